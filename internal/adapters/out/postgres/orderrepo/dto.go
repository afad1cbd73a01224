// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their machine keys and monetary amounts as numeric
// columns, so the table is directly readable by the query side and by ad-hoc
// SQL.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID          uuid.UUID  `gorm:"type:uuid;index"`
	SellerID         uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`
	AdminApproverID  *uuid.UUID `gorm:"type:uuid"`

	TotalPrice      decimal.Decimal `gorm:"type:numeric(14,2)"`
	RequiresDeposit bool
	DepositAmount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	DepositStatus   string          `gorm:"size:32"`
	PaymentStatus   string          `gorm:"size:32"`
	PaymentMethod   string          `gorm:"size:32"`

	Status string `gorm:"size:32;index"`

	AdminApprovedAt     *time.Time
	SellerApprovedAt    *time.Time
	WorkStartedAt       *time.Time
	WorkCompletedAt     *time.Time
	DeliveryScheduledAt *time.Time
	DeliveryPickedUpAt  *time.Time
	DeliveredAt         *time.Time
	CompletedAt         *time.Time

	AdminNote    string
	SellerNote   string
	DeliveryNote string

	CreatedAt time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var deliveryPersonID *uuid.UUID
	if id := aggregate.DeliveryPersonID(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	var adminApproverID *uuid.UUID
	if id := aggregate.AdminApproverID(); id != nil {
		raw := id.Bytes()
		adminApproverID = &raw
	}

	timestamps := aggregate.Timestamps()
	notes := aggregate.Notes()

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		BuyerID:          aggregate.BuyerID().Bytes(),
		SellerID:         aggregate.SellerID().Bytes(),
		DeliveryPersonID: deliveryPersonID,
		AdminApproverID:  adminApproverID,

		TotalPrice:      aggregate.TotalPrice().Amount(),
		RequiresDeposit: aggregate.RequiresDeposit(),
		DepositAmount:   aggregate.DepositAmount().Amount(),
		DepositStatus:   aggregate.DepositStatus().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		PaymentMethod:   aggregate.PaymentMethod().String(),

		Status: aggregate.Status().String(),

		AdminApprovedAt:     timestamps.AdminApprovedAt,
		SellerApprovedAt:    timestamps.SellerApprovedAt,
		WorkStartedAt:       timestamps.WorkStartedAt,
		WorkCompletedAt:     timestamps.WorkCompletedAt,
		DeliveryScheduledAt: timestamps.DeliveryScheduledAt,
		DeliveryPickedUpAt:  timestamps.DeliveryPickedUpAt,
		DeliveredAt:         timestamps.DeliveredAt,
		CompletedAt:         timestamps.CompletedAt,

		AdminNote:    notes.Admin,
		SellerNote:   notes.Seller,
		DeliveryNote: notes.Delivery,

		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including ledger state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if dErr != nil {
			return nil, dErr
		}
		deliveryPersonID = &dID
	}

	var adminApproverID *kernel.UUID
	if dto.AdminApproverID != nil {
		aID, aErr := kernel.UUIDFromBytes((*dto.AdminApproverID)[:])
		if aErr != nil {
			return nil, aErr
		}
		adminApproverID = &aID
	}

	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	depositAmount, err := kernel.NewMoney(dto.DepositAmount)
	if err != nil {
		return nil, err
	}

	depositStatus, err := order.DepositStatusFromString(dto.DepositStatus)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		buyerID,
		sellerID,
		deliveryPersonID,
		adminApproverID,
		totalPrice,
		dto.RequiresDeposit,
		depositAmount,
		depositStatus,
		paymentStatus,
		payment.Method(dto.PaymentMethod),
		status,
		order.Timestamps{
			AdminApprovedAt:     dto.AdminApprovedAt,
			SellerApprovedAt:    dto.SellerApprovedAt,
			WorkStartedAt:       dto.WorkStartedAt,
			WorkCompletedAt:     dto.WorkCompletedAt,
			DeliveryScheduledAt: dto.DeliveryScheduledAt,
			DeliveryPickedUpAt:  dto.DeliveryPickedUpAt,
			DeliveredAt:         dto.DeliveredAt,
			CompletedAt:         dto.CompletedAt,
		},
		order.Notes{
			Admin:    dto.AdminNote,
			Seller:   dto.SellerNote,
			Delivery: dto.DeliveryNote,
		},
		dto.CreatedAt,
	)
}
