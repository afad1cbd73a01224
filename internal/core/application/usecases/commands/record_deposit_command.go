package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordDepositCommandIsNotConstructed = errors.New(
	"RecordDepositCommand must be created via NewRecordDepositCommand constructor",
)

// RecordDepositCommand represents a buyer paying the up-front deposit on an
// order. The amount is capped relative to the order's total price; the cap
// ratio is configuration held by the handler, not by the command.
//
// Example:
//
//	amount, _ := kernel.MoneyFromString("800")
//	cmd, err := NewRecordDepositCommand(orderID, payerID, amount, "credit_card", nil, nil, "first half")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewRecordDepositCommandHandler(uowFactory, dispatcher, capRatio, allowedMethods)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // errors.Is against order.ErrAlreadyPaid, order.ErrDepositExceedsCap
//	}
//	fmt.Printf("recorded %s\n", result.Payment.Amount())
type RecordDepositCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	payerID        kernel.UUID
	amount         kernel.Money
	rawMethod      string
	conversationID *kernel.UUID
	productID      *kernel.UUID
	note           string

	guard guard.ConstructorGuard
}

// NewRecordDepositCommand creates a command to record a deposit payment.
// The payment method arrives as its raw wire string; the handler validates it
// against the configured allow-list. conversationID optionally links the
// payment to the buyer/seller conversation in which it was agreed; productID
// optionally names the catalog item the deposit is for.
func NewRecordDepositCommand(
	orderID kernel.UUID,
	payerID kernel.UUID,
	amount kernel.Money,
	rawMethod string,
	conversationID *kernel.UUID,
	productID *kernel.UUID,
	note string,
) (RecordDepositCommand, error) {
	depositCommand := RecordDepositCommand{
		rawMethod: rawMethod,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		depositCommand.setOrderID(orderID),
		depositCommand.setPayerID(payerID),
		depositCommand.setAmount(amount),
		depositCommand.setConversationID(conversationID),
		depositCommand.setProductID(productID),
	); err != nil {
		return RecordDepositCommand{}, err
	}

	return depositCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDepositCommand) Validate() error {
	return c.guard.Validate(ErrRecordDepositCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RecordDepositCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PayerID returns who is paying the deposit.
func (c RecordDepositCommand) PayerID() kernel.UUID {
	return c.payerID
}

// Amount returns the deposit amount.
func (c RecordDepositCommand) Amount() kernel.Money {
	return c.amount
}

// RawMethod returns the payment method as received on the wire.
func (c RecordDepositCommand) RawMethod() string {
	return c.rawMethod
}

// ConversationID returns the linked conversation, or nil.
func (c RecordDepositCommand) ConversationID() *kernel.UUID {
	return c.conversationID
}

// ProductID returns the linked catalog item, or nil.
func (c RecordDepositCommand) ProductID() *kernel.UUID {
	return c.productID
}

// Note returns the optional free-text remark for the ledger row.
func (c RecordDepositCommand) Note() string {
	return c.note
}

func (c *RecordDepositCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordDepositCommand) setPayerID(payerID kernel.UUID) error {
	if err := payerID.Validate(); err != nil {
		return err
	}

	c.payerID = payerID
	return nil
}

func (c *RecordDepositCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	c.amount = amount
	return nil
}

func (c *RecordDepositCommand) setConversationID(conversationID *kernel.UUID) error {
	if conversationID == nil {
		return nil
	}
	if err := conversationID.Validate(); err != nil {
		return err
	}

	c.conversationID = conversationID
	return nil
}

func (c *RecordDepositCommand) setProductID(productID *kernel.UUID) error {
	if productID == nil {
		return nil
	}
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}
