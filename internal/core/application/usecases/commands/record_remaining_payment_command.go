package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordRemainingPaymentCommandIsNotConstructed = errors.New(
	"RecordRemainingPaymentCommand must be created via NewRecordRemainingPaymentCommand constructor",
)

// RecordRemainingPaymentCommand represents a buyer settling the outstanding
// balance of an order. No amount is carried: the system computes the balance
// from the order's own ledger, so the buyer cannot over- or underpay.
type RecordRemainingPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	payerID   kernel.UUID
	rawMethod string
	note      string

	guard guard.ConstructorGuard
}

// NewRecordRemainingPaymentCommand creates a command to settle an order's
// remaining balance.
func NewRecordRemainingPaymentCommand(
	orderID kernel.UUID,
	payerID kernel.UUID,
	rawMethod string,
	note string,
) (RecordRemainingPaymentCommand, error) {
	paymentCommand := RecordRemainingPaymentCommand{
		rawMethod: rawMethod,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentCommand.setOrderID(orderID),
		paymentCommand.setPayerID(payerID),
	); err != nil {
		return RecordRemainingPaymentCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordRemainingPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordRemainingPaymentCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RecordRemainingPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PayerID returns who is settling the balance.
func (c RecordRemainingPaymentCommand) PayerID() kernel.UUID {
	return c.payerID
}

// RawMethod returns the payment method as received on the wire.
func (c RecordRemainingPaymentCommand) RawMethod() string {
	return c.rawMethod
}

// Note returns the optional free-text remark for the ledger row.
func (c RecordRemainingPaymentCommand) Note() string {
	return c.note
}

func (c *RecordRemainingPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordRemainingPaymentCommand) setPayerID(payerID kernel.UUID) error {
	if err := payerID.Validate(); err != nil {
		return err
	}

	c.payerID = payerID
	return nil
}
