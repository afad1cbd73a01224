package historyrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append saves one audit entry to the database.
func (r *GormHistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves the full audit trail of an order, oldest first.
func (r *GormHistoryRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*history.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
