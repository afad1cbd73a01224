package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand represents one actor's attempt to move an order
// through its lifecycle. The action carries which transition is requested;
// the actor's role and identity are checked against the order itself.
//
// Example:
//
//	actor, _ := order.NewActor(sellerID, order.RoleSeller)
//	cmd, err := NewApplyTransitionCommand(orderID, order.ActionSellerApproval, actor, "on it", nil)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, dispatcher)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // errors.Is against order.ErrUnauthorized, order.ErrInvalidTransition,
//	    // order.ErrPaymentPrecondition tells the caller what was rejected
//	}
//	fmt.Printf("order is now %s\n", result.Order.Status())
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	action           order.Action
	actor            order.Actor
	note             string
	deliveryPersonID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command for a lifecycle transition.
// deliveryPersonID is only meaningful for the pickup-assignment action and
// may be nil otherwise.
func NewApplyTransitionCommand(
	orderID kernel.UUID,
	action order.Action,
	actor order.Actor,
	note string,
	deliveryPersonID *kernel.UUID,
) (ApplyTransitionCommand, error) {
	transitionCommand := ApplyTransitionCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setAction(action),
		transitionCommand.setActor(actor),
		transitionCommand.setDeliveryPersonID(deliveryPersonID),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApplyTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested lifecycle action.
func (c ApplyTransitionCommand) Action() order.Action {
	return c.action
}

// Actor returns who is performing the action.
func (c ApplyTransitionCommand) Actor() order.Actor {
	return c.actor
}

// Note returns the optional free-text remark.
func (c ApplyTransitionCommand) Note() string {
	return c.note
}

// DeliveryPersonID returns the delivery person for pickup assignment, or nil.
func (c ApplyTransitionCommand) DeliveryPersonID() *kernel.UUID {
	return c.deliveryPersonID
}

func (c *ApplyTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *ApplyTransitionCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ApplyTransitionCommand) setDeliveryPersonID(deliveryPersonID *kernel.UUID) error {
	if deliveryPersonID == nil {
		return nil
	}
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	c.deliveryPersonID = deliveryPersonID
	return nil
}
