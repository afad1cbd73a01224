// Package ports defines the persistence and messaging contracts between the
// domain core and the infrastructure adapters, enabling dependency inversion
// and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier without
	// locking it. Intended for read paths.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order while taking an exclusive, order-scoped
	// row lock for the duration of the surrounding transaction. The wait is
	// bounded: when another transaction holds the lock, the call fails with
	// errs.ErrLockNotAvailable instead of blocking, so two concurrent actions
	// against the same order serialize and the loser observes the guard
	// failure appropriate to the state the winner produced.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
