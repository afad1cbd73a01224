package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created
// through NewMoney, MoneyFromString, or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney, MoneyFromString, or ZeroMoney")

// Money is a value object representing a non-negative monetary amount.
// It wraps shopspring/decimal so that prices, deposits and remaining balances
// are computed exactly, never through binary floats.
//
// Money is immutable: every arithmetic operation returns a new value.
// The zero value of Money is invalid and must be constructed through
// NewMoney, MoneyFromString, or ZeroMoney.
//
// Example usage:
//
//	total, _ := kernel.MoneyFromString("1000.00")
//	deposit, _ := kernel.MoneyFromString("800.00")
//	remaining, _ := total.Sub(deposit) // 200.00
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney creates a Money value from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount, isConstructed: true}, nil
}

// MoneyFromString parses a decimal string such as "199.90" into Money.
// Returns an error for malformed or negative input.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a valid Money value of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Sub returns m minus other.
// Returns an error if the result would be negative; Money never holds a
// negative amount.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s minus %s is negative", m.amount.String(), other.amount.String()))
	}
	return Money{amount: result, isConstructed: true}, nil
}

// MulRatio returns m scaled by the given ratio, e.g. a 0.8 deposit cap.
func (m Money) MulRatio(ratio decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(ratio), isConstructed: true}
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}

// Validate checks that the Money value was properly constructed and holds a
// non-negative amount.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	if m.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", m.amount.String()))
	}
	return nil
}
