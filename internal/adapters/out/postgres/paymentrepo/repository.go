package paymentrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"

	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add saves a new payment record to the database.
func (r *GormPaymentRepository) Add(ctx context.Context, record *payment.Payment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves every payment recorded against an order, oldest first.
func (r *GormPaymentRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}

	return records, nil
}
