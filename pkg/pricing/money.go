// Package pricing provides integer minor-unit money arithmetic and the
// price resolver for the capability catalog. All capability prices are USD;
// amounts are held in minor units at a fixed scale of 4 so sub-cent prices
// never touch floating point.
package pricing

import (
	"fmt"
)

// USDScale is the number of decimal places for USD minor units.
// Scale 4 means 1 minor unit = $0.0001.
const USDScale = 4

// Money represents a monetary value in a specific currency.
// It uses integer math (minor units) to avoid floating point errors.
type Money struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"` // ISO 4217 code
	Scale       int    `json:"scale"`
}

// USD creates a USD Money value from minor units at USDScale.
func USD(minor int64) Money {
	return Money{
		AmountMinor: minor,
		Currency:    "USD",
		Scale:       USDScale,
	}
}

// Add adds two Money amounts. Returns error on currency or scale mismatch.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	if m.Scale != other.Scale {
		return Money{}, fmt.Errorf("scale mismatch: %d vs %d", m.Scale, other.Scale)
	}
	return Money{
		AmountMinor: m.AmountMinor + other.AmountMinor,
		Currency:    m.Currency,
		Scale:       m.Scale,
	}, nil
}

// Sub subtracts other Money from m. Returns error on currency mismatch.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	if m.Scale != other.Scale {
		return Money{}, fmt.Errorf("scale mismatch: %d vs %d", m.Scale, other.Scale)
	}
	return Money{
		AmountMinor: m.AmountMinor - other.AmountMinor,
		Currency:    m.Currency,
		Scale:       m.Scale,
	}, nil
}

// IsZero returns true if the amount is 0.
func (m Money) IsZero() bool {
	return m.AmountMinor == 0
}

// IsPositive returns true if the amount is > 0.
func (m Money) IsPositive() bool {
	return m.AmountMinor > 0
}

// IsNegative returns true if the amount is < 0.
func (m Money) IsNegative() bool {
	return m.AmountMinor < 0
}

// String renders the amount as a decimal with the currency code,
// e.g. "0.0500 USD".
func (m Money) String() string {
	div := int64(1)
	for i := 0; i < m.Scale; i++ {
		div *= 10
	}
	sign := ""
	minor := m.AmountMinor
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%0*d %s", sign, minor/div, m.Scale, minor%div, m.Currency)
}

// Sum adds a series of Money values. An empty series sums to USD(0).
func Sum(values []Money) (Money, error) {
	total := USD(0)
	for _, v := range values {
		var err error
		total, err = total.Add(v)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}
