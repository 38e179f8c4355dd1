package quote

import "github.com/shopspring/decimal"

// Money is an amount rounded to cents and rendered as a JSON number.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds v to cents.
func NewMoney(v float64) Money {
	return Money{decimal.NewFromFloat(v).Round(2)}
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}
