// Package payment contains the immutable Payment record: one row per monetary
// movement against an order. Payments are created once and never mutated or
// deleted; reversals are modeled as new records, not edits.
package payment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Type distinguishes the two monetary movements of an order.
type Type int

const (
	// TypeUnknown represents an invalid or undefined payment type.
	TypeUnknown Type = iota

	// TypeDeposit is the partial up-front payment.
	TypeDeposit

	// TypeRemaining is the closing balance payment.
	TypeRemaining
)

// getTypeStrings returns the machine keys for every Type value.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:   "unknown",
		TypeDeposit:   "deposit",
		TypeRemaining: "remaining_payment",
	}
}

// Validate checks if the Type value is one of the defined payment types.
func (t Type) Validate() error {
	if t != TypeDeposit && t != TypeRemaining {
		return errs.NewValueIsInvalidErrorWithCause("paymentType", fmt.Errorf("%d is not a valid payment type", t))
	}
	return nil
}

// String returns the machine key of the type, e.g. "deposit".
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Status reports the outcome of a payment attempt.
type Status int

const (
	// StatusUnknown represents an invalid or undefined payment status.
	StatusUnknown Status = iota

	// StatusCompleted means the payment was confirmed.
	StatusCompleted

	// StatusFailed means the payment attempt did not go through.
	StatusFailed
)

// String returns the machine key of the status.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Validate checks if the Status value is one of the defined payment statuses.
func (s Status) Validate() error {
	if s != StatusCompleted && s != StatusFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// Payment is an immutable record of one monetary movement against an order.
// It exists only in relation to its parent order; the financial audit
// requirement forbids mutating or deleting rows after creation, so the type
// exposes no setters.
type Payment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	payerID        kernel.UUID
	paymentType    Type
	method         Method
	amount         kernel.Money
	status         Status
	transactionRef kernel.UUID
	conversationID *kernel.UUID
	productID      *kernel.UUID
	note           string
	createdAt      time.Time

	isConstructed bool
}

// NewPayment creates a completed Payment record with a fresh unique
// transaction reference. The amount must be positive.
//
// conversationID optionally links the payment to the buyer/seller
// conversation in which it was agreed; productID optionally names the catalog
// item the payment settles. Both are opaque references here.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	payerID kernel.UUID,
	paymentType Type,
	method Method,
	amount kernel.Money,
	conversationID *kernel.UUID,
	productID *kernel.UUID,
	note string,
	now time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		payerID.Validate(),
		paymentType.Validate(),
		amount.Validate(),
	); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	return &Payment{
		id:             id,
		orderID:        orderID,
		payerID:        payerID,
		paymentType:    paymentType,
		method:         method,
		amount:         amount,
		status:         StatusCompleted,
		transactionRef: kernel.NewUUID(),
		conversationID: conversationID,
		productID:      productID,
		note:           note,
		createdAt:      now,
		isConstructed:  true,
	}, nil
}

// RestorePayment reconstructs a Payment from persistence without re-running
// creation-time rules. All fields are taken as stored.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	payerID kernel.UUID,
	paymentType Type,
	method Method,
	amount kernel.Money,
	status Status,
	transactionRef kernel.UUID,
	conversationID *kernel.UUID,
	productID *kernel.UUID,
	note string,
	createdAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		payerID.Validate(),
		paymentType.Validate(),
		amount.Validate(),
		status.Validate(),
		transactionRef.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:             id,
		orderID:        orderID,
		payerID:        payerID,
		paymentType:    paymentType,
		method:         method,
		amount:         amount,
		status:         status,
		transactionRef: transactionRef,
		conversationID: conversationID,
		productID:      productID,
		note:           note,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the parent order.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// PayerID returns the identifier of the paying party.
func (p *Payment) PayerID() kernel.UUID {
	return p.payerID
}

// PaymentType returns whether this record is a deposit or the closing balance.
func (p *Payment) PaymentType() Type {
	return p.paymentType
}

// Method returns the payment instrument used.
func (p *Payment) Method() Method {
	return p.method
}

// Amount returns the amount moved.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Status returns the payment outcome.
func (p *Payment) Status() Status {
	return p.status
}

// TransactionRef returns the unique reference for this movement.
func (p *Payment) TransactionRef() kernel.UUID {
	return p.transactionRef
}

// ConversationID returns the linked conversation, or nil.
func (p *Payment) ConversationID() *kernel.UUID {
	return p.conversationID
}

// ProductID returns the linked catalog item, or nil.
func (p *Payment) ProductID() *kernel.UUID {
	return p.productID
}

// Note returns the free-text note attached at creation.
func (p *Payment) Note() string {
	return p.note
}

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}
