package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	cases := map[string]Money{
		"":          0,
		"0":         0,
		"12":        1200,
		"12.5":      1250,
		"12.50":     1250,
		"₹1,234.56": 123456,
		"-3.25":     -325,
	}
	for in, want := range cases {
		got, err := ParseMoney(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMoney("12.345")
	assert.Error(t, err, "more than 2 decimal places")
	_, err = ParseMoney("abc")
	assert.Error(t, err)
}

func TestMoneyStringCanonical(t *testing.T) {
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "12.50", Money(1250).String())
	assert.Equal(t, "-3.05", Money(-305).String())
	assert.Equal(t, "600.00", Money(60000).String())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Money(123456))
	assert.NoError(t, err)
	assert.Equal(t, `"1234.56"`, string(b))

	var m Money
	assert.NoError(t, json.Unmarshal([]byte(`"99.90"`), &m))
	assert.Equal(t, Money(9990), m)

	// bare numbers from older clients still parse
	assert.NoError(t, json.Unmarshal([]byte(`150`), &m))
	assert.Equal(t, Money(15000), m)
}

func TestMoneyMulPercent(t *testing.T) {
	assert.Equal(t, Money(10800), Money(60000).MulPercent(18))
	assert.Equal(t, Money(9000), Money(100000).MulPercent(9))
	// half-up rounding: 103 * 18% = 18.54 paise
	assert.Equal(t, Money(19), Money(103).MulPercent(18))
}
