// Package money provides the fixed-point amount type used for all
// balance and counter arithmetic. Amounts are always normalized to
// two fractional digits; float64 never participates in accumulation.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every Amount carries.
const Scale = 2

// Amount is a fixed-point currency amount.
type Amount struct {
	dec decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{dec: decimal.Zero}
}

// New returns an Amount from whole currency units.
func New(units int64) Amount {
	return Amount{dec: decimal.NewFromInt(units)}
}

// FromDecimal normalizes d to the amount scale, rounding half away
// from zero.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{dec: d.Round(Scale)}
}

// Parse reads a decimal string such as "1500" or "1500.50".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

func (a Amount) Add(b Amount) Amount { return Amount{dec: a.dec.Add(b.dec).Round(Scale)} }
func (a Amount) Sub(b Amount) Amount { return Amount{dec: a.dec.Sub(b.dec).Round(Scale)} }

// Cmp returns -1, 0 or 1 comparing decimal values, not string forms.
func (a Amount) Cmp(b Amount) int { return a.dec.Cmp(b.dec) }

func (a Amount) Equal(b Amount) bool       { return a.dec.Equal(b.dec) }
func (a Amount) GreaterThan(b Amount) bool { return a.dec.GreaterThan(b.dec) }
func (a Amount) LessThan(b Amount) bool    { return a.dec.LessThan(b.dec) }
func (a Amount) IsZero() bool              { return a.dec.IsZero() }
func (a Amount) IsNegative() bool          { return a.dec.IsNegative() }
func (a Amount) IsPositive() bool          { return a.dec.IsPositive() }

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.dec }

// IntPart returns the whole-unit part, used for zero-decimal gateway
// currencies.
func (a Amount) IntPart() int64 { return a.dec.IntPart() }

// String renders with exactly two fractional digits.
func (a Amount) String() string { return a.dec.StringFixed(Scale) }

// Value implements driver.Valuer for numeric columns.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}
	a.dec = d.Round(Scale)
	return nil
}

// MarshalJSON renders the amount as a JSON string to avoid float
// round-tripping in clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both "1500.00" and bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	a.dec = d.Round(Scale)
	return nil
}
