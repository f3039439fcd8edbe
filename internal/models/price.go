package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price is a fixed-point amount with two fractional digits.
type Price struct {
	decimal.Decimal
}

// NewPriceFromDecimal builds a price rounded to two digits.
func NewPriceFromDecimal(amount decimal.Decimal) Price {
	return Price{Decimal: amount.Round(2)}
}

// NewPriceFromString parses a decimal string into a price.
func NewPriceFromString(raw string) (Price, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Price{}, err
	}
	return NewPriceFromDecimal(d), nil
}

// MarshalJSON renders the amount as a two-digit string.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number.
func (p *Price) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		p.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	p.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.Decimal.Round(2).Value()
}

// Scan implements sql.Scanner.
func (p *Price) Scan(value interface{}) error {
	if err := p.Decimal.Scan(value); err != nil {
		return err
	}
	p.Decimal = p.Decimal.Round(2)
	return nil
}

// String returns the two-digit representation.
func (p Price) String() string {
	return p.Decimal.Round(2).StringFixed(2)
}
