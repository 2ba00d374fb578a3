// Package gstin enforces the positional structure of India's 15-character
// GST identification number:
//
//	pos 0-1   state code (digits)
//	pos 2-6   PAN letters
//	pos 7-10  PAN digits
//	pos 11    PAN letter
//	pos 12    entity code (1-9 or letter)
//	pos 13    literal 'Z'
//	pos 14    checksum (digit or letter)
package gstin

import "strings"

const Length = 15

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return r >= 'A' && r <= 'Z' }

// allowedAt reports whether r (already uppercased) may occupy position pos.
func allowedAt(pos int, r rune) bool {
	switch {
	case pos <= 1:
		return isDigit(r)
	case pos <= 6:
		return isLetter(r)
	case pos <= 10:
		return isDigit(r)
	case pos == 11:
		return isLetter(r)
	case pos == 12:
		return (r >= '1' && r <= '9') || isLetter(r)
	case pos == 13:
		return r == 'Z'
	case pos == 14:
		return isDigit(r) || isLetter(r)
	}
	return false
}

// Sanitize uppercases the input and silently drops characters that do not
// fit the position they would land in, capping the result at 15 characters.
// It is a fixed point on any conforming value.
func Sanitize(s string) string {
	var out strings.Builder
	pos := 0
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if pos >= Length {
			break
		}
		if allowedAt(pos, r) {
			out.WriteRune(r)
			pos++
		}
	}
	return out.String()
}

// Valid reports whether s is a structurally complete GSTIN.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i, r := range s {
		if !allowedAt(i, r) {
			return false
		}
	}
	return true
}

// Partial reports whether s is a non-empty prefix that cannot yet pass
// Valid. Callers treat a partial value as a blocking field error; empty is
// acceptable (the field is optional).
func Partial(s string) bool {
	return s != "" && len(s) < Length
}

// Check validates an optional GSTIN field: empty or fully valid passes.
func Check(s string) bool {
	return s == "" || Valid(s)
}
