package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for the immutable
// payment ledger. There is deliberately no update or delete: payment rows are
// financial audit records.
type PaymentRepository interface {
	// Add persists a new payment record.
	Add(ctx context.Context, record *payment.Payment) error

	// GetAllForOrder retrieves every payment recorded against an order,
	// ordered by creation time ascending.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
