package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value with exactly two fractional digits.
// It accepts JSON numbers as well as numeric strings ("12.50") and always
// marshals with two decimals, so 12.5 in comes back as 12.50.
type Amount struct {
	d decimal.Decimal
}

// ParseAmount parses a raw JSON value holding either a number or a quoted
// numeric string. The result is rounded half-up to two fractional digits.
func ParseAmount(raw []byte) (Amount, error) {
	s := string(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return ParseAmountString(s)
}

// ParseAmountString parses a plain decimal string such as "12.50" or "-3".
func ParseAmountString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	return Amount{d: d.Round(2)}, nil
}

// String returns the canonical two-decimal representation, e.g. "12.50".
func (a Amount) String() string {
	return a.d.StringFixed(2)
}

// Equal reports whether two amounts represent the same value.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// MarshalJSON emits the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
