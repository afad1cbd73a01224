// Package paymentrepo persists the immutable payment ledger. Rows are only
// ever inserted and read; the financial audit requirement forbids updates and
// deletes.
package paymentrepo

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for persisting payment records.
type PaymentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;index"`
	PayerID        uuid.UUID       `gorm:"type:uuid;index"`
	PaymentType    string          `gorm:"size:32"`
	Method         string          `gorm:"size:32"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status         string          `gorm:"size:32"`
	TransactionRef uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	ConversationID *uuid.UUID      `gorm:"type:uuid"`
	ProductID      *uuid.UUID      `gorm:"type:uuid"`
	Note           string
	CreatedAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment record to its database representation.
func fromDomain(record *payment.Payment) PaymentDTO {
	var conversationID *uuid.UUID
	if id := record.ConversationID(); id != nil {
		raw := id.Bytes()
		conversationID = &raw
	}

	var productID *uuid.UUID
	if id := record.ProductID(); id != nil {
		raw := id.Bytes()
		productID = &raw
	}

	return PaymentDTO{
		ID:             record.ID().Bytes(),
		OrderID:        record.OrderID().Bytes(),
		PayerID:        record.PayerID().Bytes(),
		PaymentType:    record.PaymentType().String(),
		Method:         record.Method().String(),
		Amount:         record.Amount().Amount(),
		Status:         record.Status().String(),
		TransactionRef: record.TransactionRef().Bytes(),
		ConversationID: conversationID,
		ProductID:      productID,
		Note:           record.Note(),
		CreatedAt:      record.CreatedAt(),
	}
}

// toDomain converts a database DTO back to a payment record using RestorePayment.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	payerID, err := kernel.UUIDFromBytes(dto.PayerID[:])
	if err != nil {
		return nil, err
	}

	transactionRef, err := kernel.UUIDFromBytes(dto.TransactionRef[:])
	if err != nil {
		return nil, err
	}

	var conversationID *kernel.UUID
	if dto.ConversationID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.ConversationID)[:])
		if cErr != nil {
			return nil, cErr
		}
		conversationID = &cID
	}

	var productID *kernel.UUID
	if dto.ProductID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
		if pErr != nil {
			return nil, pErr
		}
		productID = &pID
	}

	paymentType, err := typeFromString(dto.PaymentType)
	if err != nil {
		return nil, err
	}

	status, err := statusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		payerID,
		paymentType,
		payment.Method(dto.Method),
		amount,
		status,
		transactionRef,
		conversationID,
		productID,
		dto.Note,
		dto.CreatedAt,
	)
}

func typeFromString(key string) (payment.Type, error) {
	switch key {
	case payment.TypeDeposit.String():
		return payment.TypeDeposit, nil
	case payment.TypeRemaining.String():
		return payment.TypeRemaining, nil
	default:
		return payment.TypeUnknown, errs.NewValueIsInvalidErrorWithCause("paymentType",
			fmt.Errorf("%q is not a known payment type key", key))
	}
}

func statusFromString(key string) (payment.Status, error) {
	switch key {
	case payment.StatusCompleted.String():
		return payment.StatusCompleted, nil
	case payment.StatusFailed.String():
		return payment.StatusFailed, nil
	default:
		return payment.StatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a known payment status key", key))
	}
}
