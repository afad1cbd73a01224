package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the full audit trail of one order in
// timestamp order. Replaying the result reconstructs every status the order
// has held.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	trail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//	for _, entry := range trail {
//	    fmt.Printf("%s: %s -> %s\n", entry.CreatedAt, entry.FromStatus, entry.ToStatus)
//	}
type GetOrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's audit trail.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the queried order.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderHistoryQueryResponse is one audit trail row.
type GetOrderHistoryQueryResponse struct {
	ID         kernel.UUID
	FromStatus string
	ToStatus   string
	Action     string
	ActorID    kernel.UUID
	Note       string
	CreatedAt  time.Time
}
