package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves the audit trail of an order from the
// database, ordered by timestamp ascending.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery(orderID)
//
//	trail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to get history: %v", err)
//	    return err
//	}
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the audit trail query.
// An order with no history yields an empty slice, not an error.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			from_status,
			to_status,
			action,
			actor_id,
			note,
			created_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			fromStatus string
			toStatus   string
			action     string
			actorID    uuid.UUID
			note       string
			createdAt  time.Time
		)

		err = rows.Scan(&id, &fromStatus, &toStatus, &action, &actorID, &note, &createdAt)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actorUUID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		entries = append(entries, GetOrderHistoryQueryResponse{
			ID:         entryID,
			FromStatus: fromStatus,
			ToStatus:   toStatus,
			Action:     action,
			ActorID:    actorUUID,
			Note:       note,
			CreatedAt:  createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
