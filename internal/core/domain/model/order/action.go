package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Action enumerates the lifecycle operations an actor can request.
// Exactly one Action exists per transition kind; history entries record the
// Action that produced them.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionAdminApproval accepts a pending order onto the platform.
	ActionAdminApproval

	// ActionSellerApproval commits the seller to the order.
	ActionSellerApproval

	// ActionStartWork marks the beginning of production/work.
	ActionStartWork

	// ActionCompleteWork marks the end of production/work.
	ActionCompleteWork

	// ActionMarkReady flags the finished order as awaiting pickup assignment.
	ActionMarkReady

	// ActionAssignPickup assigns a delivery person to collect the order.
	ActionAssignPickup

	// ActionPickUp records the delivery person collecting the order.
	ActionPickUp

	// ActionMarkDelivered records the order reaching the buyer.
	ActionMarkDelivered

	// ActionComplete closes out a delivered order.
	ActionComplete

	// ActionCancel abandons the order before delivery.
	ActionCancel

	// ActionSuspend freezes the order pending platform review.
	ActionSuspend

	// ActionRefund tags a completed or cancelled order as refunded.
	ActionRefund
)

// getActionStrings returns the machine keys for every Action value.
func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:        "unknown",
		ActionAdminApproval:  "admin_approval",
		ActionSellerApproval: "seller_approval",
		ActionStartWork:      "work_started",
		ActionCompleteWork:   "work_completed",
		ActionMarkReady:      "ready_for_delivery",
		ActionAssignPickup:   "assigned_to_pickup",
		ActionPickUp:         "picked_up",
		ActionMarkDelivered:  "delivered",
		ActionComplete:       "completed",
		ActionCancel:         "cancelled",
		ActionSuspend:        "suspended",
		ActionRefund:         "refunded",
	}
}

// Validate checks if the Action value is one of the defined operations.
func (a Action) Validate() error {
	if _, ok := getActionStrings()[a]; !ok || a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the machine key of the action, e.g. "seller_approval".
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ActionFromString maps a machine key back to its Action.
func ActionFromString(key string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == key && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a known action key", key))
}

// Role identifies the kind of party performing an action.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleBuyer is the purchasing party of an order.
	RoleBuyer

	// RoleSeller is the party producing and fulfilling an order.
	RoleSeller

	// RoleAdmin is a platform administrator.
	RoleAdmin

	// RoleDelivery is a delivery agent.
	RoleDelivery
)

// getRoleStrings returns the machine keys for every Role value.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleBuyer:    "buyer",
		RoleSeller:   "seller",
		RoleAdmin:    "admin",
		RoleDelivery: "delivery",
	}
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the machine key of the role, e.g. "seller".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString maps a machine key back to its Role.
func RoleFromString(key string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == key && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a known role key", key))
}

// Actor is the party requesting a transition: an identity plus the role it
// claims. Authorization compares the actor against the order's own parties,
// never against the role alone (except for admins).
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	actor := Actor{ID: id, Role: role}
	if err := actor.Validate(); err != nil {
		return Actor{}, err
	}
	return actor, nil
}

// Validate checks that both the identity and the claimed role are well-formed.
func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}
