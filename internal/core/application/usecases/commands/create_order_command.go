package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new marketplace order.
// Encapsulates the commercial terms agreed between buyer and seller: the
// total price and whether the seller demands an upfront deposit.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	price, _ := kernel.MoneyFromString("1000")
//	cmd, err := NewCreateOrderCommand(orderID, buyerID, sellerID, price, true)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	buyerID         kernel.UUID
	sellerID        kernel.UUID
	totalPrice      kernel.Money
	requiresDeposit bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that all identifiers and the total price are well-formed.
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	totalPrice kernel.Money,
	requiresDeposit bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		requiresDeposit: requiresDeposit,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setBuyerID(buyerID),
		orderCommand.setSellerID(sellerID),
		orderCommand.setTotalPrice(totalPrice),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the identifier of the purchasing user.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerID returns the identifier of the selling user.
func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// TotalPrice returns the agreed total price of the order.
func (c CreateOrderCommand) TotalPrice() kernel.Money {
	return c.totalPrice
}

// RequiresDeposit reports whether the seller demands an upfront deposit.
func (c CreateOrderCommand) RequiresDeposit() bool {
	return c.requiresDeposit
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setTotalPrice(totalPrice kernel.Money) error {
	if err := totalPrice.Validate(); err != nil {
		return err
	}

	c.totalPrice = totalPrice
	return nil
}
