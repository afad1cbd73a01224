// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return plain response
// structs; they never load aggregates or hold transactions.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderPaymentsQueryIsNotConstructed = errors.New(
	"GetOrderPaymentsQuery must be created via NewGetOrderPaymentsQuery constructor",
)

// GetOrderPaymentsQuery retrieves the payment summary of one order: its
// ledger state, every recorded payment, and the computed remaining balance.
//
// Example:
//
//	query, err := NewGetOrderPaymentsQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get payment summary: %w", err)
//	}
//	fmt.Printf("remaining: %s\n", summary.RemainingAmount)
type GetOrderPaymentsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderPaymentsQuery creates a query for one order's payment summary.
func NewGetOrderPaymentsQuery(orderID kernel.UUID) (GetOrderPaymentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderPaymentsQuery{}, err
	}

	return GetOrderPaymentsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderPaymentsQueryIsNotConstructed)
}

// OrderID returns the identifier of the queried order.
func (q GetOrderPaymentsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PaymentResponse is one recorded payment row.
type PaymentResponse struct {
	ID             kernel.UUID
	PayerID        kernel.UUID
	PaymentType    string
	Method         string
	Amount         decimal.Decimal
	Status         string
	TransactionRef kernel.UUID
	Note           string
	CreatedAt      time.Time
}

// GetOrderPaymentsQueryResponse is the payment summary of one order.
//
// RemainingAmount follows the ledger rule: zero once fully paid, the full
// total before a deposit is recorded, total minus deposit in between.
type GetOrderPaymentsQueryResponse struct {
	OrderID         kernel.UUID
	TotalPrice      decimal.Decimal
	DepositAmount   decimal.Decimal
	DepositStatus   string
	PaymentStatus   string
	PaymentMethod   string
	RemainingAmount decimal.Decimal
	Payments        []PaymentResponse
}
