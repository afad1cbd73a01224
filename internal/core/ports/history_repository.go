package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/kernel"
)

// HistoryRepository defines the persistence contract for the append-only
// audit log. Rows are never updated or deleted.
type HistoryRepository interface {
	// Append persists one audit entry for an accepted transition.
	Append(ctx context.Context, entry *history.Entry) error

	// GetAllForOrder retrieves the full audit trail of an order, ordered by
	// timestamp ascending. Replaying the result reconstructs every status
	// the order has held.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*history.Entry, error)
}
