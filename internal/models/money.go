package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money amount in rupees, kept at 2 decimal places
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal builds Money from a decimal
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoney builds Money from a decimal literal such as "1299.50"; it panics on bad input.
func NewMoney(value string) Money {
	return Money{Decimal: decimal.RequireFromString(value).Round(2)}
}

// MarshalJSON renders a JSON number with 2 decimals
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).StringFixed(2)), nil
}

// UnmarshalJSON accepts a number or a numeric string
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", raw, err)
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value writes to the database
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan reads from the database
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 2 decimal representation
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// LineTotal (price - price*discount/100) * quantity
func LineTotal(price Money, discountPercent, quantity int) Money {
	discount := price.Decimal.Mul(decimal.NewFromInt(int64(discountPercent))).Div(decimal.NewFromInt(100))
	return NewMoneyFromDecimal(price.Decimal.Sub(discount).Mul(decimal.NewFromInt(int64(quantity))))
}
