// Package historyrepo persists the append-only audit log of order
// transitions. Rows are only ever inserted and read.
package historyrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryDTO represents the database structure for audit log rows.
// The prior status is an explicit column; the note additionally carries the
// human-readable status-change phrase but nothing parses it on reads.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"size:32"`
	ToStatus   string    `gorm:"size:32"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	Action     string    `gorm:"size:32"`
	Note       string
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *history.Entry) HistoryDTO {
	return HistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: entry.FromStatus().String(),
		ToStatus:   entry.ToStatus().String(),
		ActorID:    entry.ActorID().Bytes(),
		Action:     entry.Action().String(),
		Note:       entry.Note(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// toDomain converts a database DTO back to an audit entry using RestoreEntry.
func toDomain(dto HistoryDTO) (*history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	fromStatus, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return nil, err
	}

	toStatus, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	action, err := order.ActionFromString(dto.Action)
	if err != nil {
		return nil, err
	}

	return history.RestoreEntry(
		id,
		orderID,
		fromStatus,
		toStatus,
		actorID,
		action,
		dto.Note,
		dto.CreatedAt,
	)
}
