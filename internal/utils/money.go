package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in paise. All charge fields travel as 2-decimal strings
// on the wire; arithmetic stays in integer paise to avoid float drift.
type Money int64

// ParseMoney accepts "1234", "1234.5", "1234.56" (optionally with a leading
// rupee symbol or commas) and returns the amount in paise.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		frac = s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	v := w*100 + f
	if neg {
		v = -v
	}
	return Money(v), nil
}

// String renders the canonical 2-decimal form, e.g. "1234.50".
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*m = 0
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MulPercent applies a percentage (e.g. 18 for 18%) with half-up rounding.
func (m Money) MulPercent(pct int64) Money {
	v := int64(m) * pct
	if v >= 0 {
		return Money((v + 50) / 100)
	}
	return Money((v - 50) / 100)
}

// MulFloat multiplies by a rate (per-kg price etc.) with half-up rounding.
func (m Money) MulFloat(f float64) Money {
	v := float64(m) * f
	if v >= 0 {
		return Money(int64(v + 0.5))
	}
	return Money(int64(v - 0.5))
}
