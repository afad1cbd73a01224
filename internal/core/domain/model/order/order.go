package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDeliveryPersonRequired is returned when a pickup assignment arrives
	// without a delivery person.
	ErrDeliveryPersonRequired = errs.NewValueIsRequiredError("deliveryPersonId")
)

// Timestamps holds the per-transition commit times of an order.
// Each field is set exactly once, when its transition is accepted, and stays
// nil until then.
type Timestamps struct {
	AdminApprovedAt     *time.Time
	SellerApprovedAt    *time.Time
	WorkStartedAt       *time.Time
	WorkCompletedAt     *time.Time
	DeliveryScheduledAt *time.Time
	DeliveryPickedUpAt  *time.Time
	DeliveredAt         *time.Time
	CompletedAt         *time.Time
}

// Notes holds the advisory free-text notes per actor role.
// Notes carry no invariants; they are stored as given.
type Notes struct {
	Admin    string
	Seller   string
	Delivery string
}

// TransitionRequest describes one actor action against an order.
// DeliveryPersonID is consulted only by ActionAssignPickup, where it is
// required.
type TransitionRequest struct {
	Action           Action
	Actor            Actor
	Note             string
	DeliveryPersonID *kernel.UUID
}

// Transition reports an accepted state change, used by callers to append the
// matching history entry.
type Transition struct {
	From       Status
	To         Status
	Action     Action
	ActorID    kernel.UUID
	OccurredAt time.Time
}

// Order represents one purchase moving through multi-party fulfillment.
// It is the aggregate root owning the lifecycle status, the monetary fields
// of the payment ledger, and the actor assignments.
//
// Order follows these invariants:
//   - Total price is positive
//   - Deposit amount never exceeds the configured share of the total price
//     once the deposit is paid
//   - The status only moves along the transition table in rules.go
//   - Each lifecycle timestamp is stamped exactly once
//   - Can only be created through NewOrder or RestoreOrder
//
// All mutation goes through Apply, RecordDeposit and RecordRemainingPayment;
// the struct exposes no setters.
type Order struct {
	id kernel.UUID

	// parties
	buyerID          kernel.UUID
	sellerID         kernel.UUID
	deliveryPersonID *kernel.UUID
	adminApproverID  *kernel.UUID

	// commercial
	totalPrice      kernel.Money
	requiresDeposit bool
	depositAmount   kernel.Money
	depositStatus   DepositStatus
	paymentStatus   PaymentStatus
	paymentMethod   payment.Method

	// lifecycle
	status     Status
	timestamps Timestamps
	notes      Notes
	createdAt  time.Time

	domainEvents  []DomainEvent
	isConstructed bool
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id: unique identifier for the order
//   - buyerID, sellerID: the two commercial parties (must be distinct)
//   - totalPrice: full price of the order (must be positive)
//   - requiresDeposit: whether seller work is gated on an up-front deposit
//   - now: creation time
//
// Returns a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	totalPrice kernel.Money,
	requiresDeposit bool,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		sellerID.Validate(),
		totalPrice.Validate(),
	); err != nil {
		return nil, err
	}

	if !totalPrice.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s is not greater than 0", totalPrice.String()))
	}

	if buyerID.IsEqual(sellerID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("sellerId",
			fmt.Errorf("buyer and seller must be different parties"))
	}

	return &Order{
		id:              id,
		buyerID:         buyerID,
		sellerID:        sellerID,
		totalPrice:      totalPrice,
		requiresDeposit: requiresDeposit,
		depositAmount:   kernel.ZeroMoney(),
		depositStatus:   DepositUnpaid,
		paymentStatus:   PaymentUnpaid,
		paymentMethod:   payment.MethodNone,
		status:          StatusPending,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
// Values are taken as stored; only structural validity is re-checked.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	deliveryPersonID *kernel.UUID,
	adminApproverID *kernel.UUID,
	totalPrice kernel.Money,
	requiresDeposit bool,
	depositAmount kernel.Money,
	depositStatus DepositStatus,
	paymentStatus PaymentStatus,
	paymentMethod payment.Method,
	status Status,
	timestamps Timestamps,
	notes Notes,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		sellerID.Validate(),
		totalPrice.Validate(),
		depositAmount.Validate(),
		depositStatus.Validate(),
		paymentStatus.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if deliveryPersonID != nil {
		if err := deliveryPersonID.Validate(); err != nil {
			return nil, err
		}
	}
	if adminApproverID != nil {
		if err := adminApproverID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:               id,
		buyerID:          buyerID,
		sellerID:         sellerID,
		deliveryPersonID: deliveryPersonID,
		adminApproverID:  adminApproverID,
		totalPrice:       totalPrice,
		requiresDeposit:  requiresDeposit,
		depositAmount:    depositAmount,
		depositStatus:    depositStatus,
		paymentStatus:    paymentStatus,
		paymentMethod:    paymentMethod,
		status:           status,
		timestamps:       timestamps,
		notes:            notes,
		createdAt:        createdAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the purchasing party.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// SellerID returns the fulfilling party.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// DeliveryPersonID returns the assigned delivery person, or nil.
func (o *Order) DeliveryPersonID() *kernel.UUID {
	return o.deliveryPersonID
}

// AdminApproverID returns the approving admin, or nil before approval.
func (o *Order) AdminApproverID() *kernel.UUID {
	return o.adminApproverID
}

// TotalPrice returns the full price of the order.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// RequiresDeposit reports whether seller work is gated on a deposit.
func (o *Order) RequiresDeposit() bool {
	return o.requiresDeposit
}

// DepositAmount returns the recorded deposit, zero before one is paid.
func (o *Order) DepositAmount() kernel.Money {
	return o.depositAmount
}

// DepositStatus returns whether the deposit has been collected.
func (o *Order) DepositStatus() DepositStatus {
	return o.depositStatus
}

// PaymentStatus returns how much of the total price has been collected.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns the instrument of the most recent payment.
func (o *Order) PaymentMethod() payment.Method {
	return o.paymentMethod
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timestamps returns the per-transition commit times.
func (o *Order) Timestamps() Timestamps {
	return o.timestamps
}

// Notes returns the advisory per-role notes.
func (o *Order) Notes() Notes {
	return o.notes
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DomainEvents returns the events raised since construction or the last
// ClearDomainEvents call. Callers dispatch these after a successful commit.
func (o *Order) DomainEvents() []DomainEvent {
	return o.domainEvents
}

// ClearDomainEvents drops the collected events after dispatch.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

// Apply runs one lifecycle transition against the order.
//
// Guards are evaluated in fixed order:
//  1. the actor must satisfy the action's role requirement relative to this
//     order (ErrUnauthorized),
//  2. the current status must be a predecessor of the action
//     (ErrInvalidTransition); re-applying an action whose result status
//     already holds fails here, never silently succeeds,
//  3. the action's payment guard must hold (ErrPaymentPrecondition).
//
// On success the status moves, the action's timestamp is stamped with now,
// the actor's note is kept, and a StatusChangedEvent is raised. On any guard
// failure the order is left untouched.
func (o *Order) Apply(req TransitionRequest, now time.Time) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}
	if err := req.Action.Validate(); err != nil {
		return Transition{}, err
	}

	rule, ok := getTransitionRules()[req.Action]
	if !ok {
		return Transition{}, fmt.Errorf("%w: action %s has no transition rule", ErrInvalidTransition, req.Action)
	}

	if err := o.authorize(rule.role, req.Actor); err != nil {
		return Transition{}, err
	}

	if !slices.Contains(rule.from, o.status) {
		return Transition{}, fmt.Errorf("%w: cannot apply %s while order is %s",
			ErrInvalidTransition, req.Action, o.status)
	}

	if err := o.checkPaymentGuard(rule.payment, req.Action); err != nil {
		return Transition{}, err
	}

	// Action-specific required input, validated before any mutation.
	if req.Action == ActionAssignPickup {
		if req.DeliveryPersonID == nil {
			return Transition{}, ErrDeliveryPersonRequired
		}
		if err := req.DeliveryPersonID.Validate(); err != nil {
			return Transition{}, err
		}
	}

	from := o.status
	o.status = rule.to
	o.stampTimestamp(req.Action, now)
	o.applySideEffects(req)
	o.keepNote(req.Actor.Role, req.Note)

	o.domainEvents = append(o.domainEvents, StatusChangedEvent{
		OrderID:    o.id,
		From:       from,
		To:         o.status,
		Action:     req.Action,
		ActorID:    req.Actor.ID,
		Notify:     rule.notify,
		OccurredAt: now,
	})

	return Transition{
		From:       from,
		To:         o.status,
		Action:     req.Action,
		ActorID:    req.Actor.ID,
		OccurredAt: now,
	}, nil
}

// RecordDeposit records the up-front partial payment on the ledger side of
// the aggregate.
//
// Rejections:
//   - ErrAlreadyPaid if a deposit was already collected,
//   - ErrDepositExceedsCap if amount > capRatio x total price,
//   - a validation error if amount is not positive.
//
// On success the deposit fields are set, payment status becomes
// partially_paid, and a PaymentRecordedEvent naming the seller is raised.
// The lifecycle status is untouched: a paid deposit is what later lets the
// seller-approval guard pass.
func (o *Order) RecordDeposit(amount kernel.Money, method payment.Method, capRatio decimal.Decimal, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	if o.depositStatus == DepositPaid {
		return fmt.Errorf("%w: deposit for order %s", ErrAlreadyPaid, o.id)
	}

	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	depositCap := o.totalPrice.MulRatio(capRatio)
	if amount.GreaterThan(depositCap) {
		return fmt.Errorf("%w: %s is above the cap of %s", ErrDepositExceedsCap, amount, depositCap)
	}

	o.depositAmount = amount
	o.depositStatus = DepositPaid
	o.paymentStatus = PaymentPartiallyPaid
	o.paymentMethod = method

	o.domainEvents = append(o.domainEvents, PaymentRecordedEvent{
		OrderID:     o.id,
		PayerID:     o.buyerID,
		PaymentType: payment.TypeDeposit,
		Amount:      amount,
		Notify:      PartySeller,
		OccurredAt:  now,
	})

	return nil
}

// RecordRemainingPayment collects the closing balance.
//
// Rejections:
//   - ErrDepositRequired if a required deposit is still unpaid,
//   - ErrAlreadyPaid if the order is already fully paid,
//   - ErrLedgerIntegrity if the recorded deposit exceeds the total price.
//
// Returns the collected amount (total price minus any paid deposit) so the
// caller can create the matching Payment record. On success the payment
// status becomes paid and a PaymentRecordedEvent naming the seller is raised.
func (o *Order) RecordRemainingPayment(method payment.Method, now time.Time) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	if o.requiresDeposit && o.depositStatus != DepositPaid {
		return kernel.Money{}, fmt.Errorf("%w: order %s", ErrDepositRequired, o.id)
	}

	if o.paymentStatus == PaymentPaid {
		return kernel.Money{}, fmt.Errorf("%w: order %s is fully paid", ErrAlreadyPaid, o.id)
	}

	remaining, ok := o.RemainingAmount()
	if !ok {
		return kernel.Money{}, fmt.Errorf("%w: order %s records a deposit of %s against a total price of %s",
			ErrLedgerIntegrity, o.id, o.depositAmount, o.totalPrice)
	}
	if !remaining.IsPositive() {
		return kernel.Money{}, fmt.Errorf("%w: nothing remains to pay on order %s", ErrAlreadyPaid, o.id)
	}

	o.paymentStatus = PaymentPaid
	o.paymentMethod = method

	o.domainEvents = append(o.domainEvents, PaymentRecordedEvent{
		OrderID:     o.id,
		PayerID:     o.buyerID,
		PaymentType: payment.TypeRemaining,
		Amount:      remaining,
		Notify:      PartySeller,
		OccurredAt:  now,
	})

	return remaining, nil
}

// RemainingAmount computes the outstanding balance of the order.
//
// Fully paid orders owe zero. Otherwise a paid deposit is subtracted from the
// total price. The result is never negative: a deposit above the total is a
// data-integrity fault, reported through the second return value so the
// caller can log it; the returned amount is clamped to zero.
func (o *Order) RemainingAmount() (kernel.Money, bool) {
	if o.paymentStatus == PaymentPaid {
		return kernel.ZeroMoney(), true
	}

	if o.depositStatus != DepositPaid {
		return o.totalPrice, true
	}

	remaining, err := o.totalPrice.Sub(o.depositAmount)
	if err != nil {
		return kernel.ZeroMoney(), false
	}
	return remaining, true
}

// authorize checks the action's role requirement against the actor and the
// order's own parties.
func (o *Order) authorize(requirement roleRequirement, actor Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	allowed := false
	switch requirement {
	case requireAdmin:
		allowed = actor.Role == RoleAdmin
	case requireOrderSeller:
		allowed = actor.Role == RoleSeller && actor.ID.IsEqual(o.sellerID)
	case requireSellerOrAdmin:
		allowed = actor.Role == RoleAdmin ||
			(actor.Role == RoleSeller && actor.ID.IsEqual(o.sellerID))
	case requireAssignedDelivery:
		allowed = actor.Role == RoleDelivery &&
			o.deliveryPersonID != nil && actor.ID.IsEqual(*o.deliveryPersonID)
	case requireBuyerOrAdmin:
		allowed = actor.Role == RoleAdmin ||
			(actor.Role == RoleBuyer && actor.ID.IsEqual(o.buyerID))
	}

	if !allowed {
		return fmt.Errorf("%w: role %s may not perform this action on order %s",
			ErrUnauthorized, actor.Role, o.id)
	}
	return nil
}

// checkPaymentGuard enforces the monetary precondition of a transition.
func (o *Order) checkPaymentGuard(g paymentGuard, action Action) error {
	switch g {
	case guardDepositPaidWhenRequired:
		if o.requiresDeposit && o.depositStatus != DepositPaid {
			return fmt.Errorf("%w: %s requires the deposit to be paid", ErrPaymentPrecondition, action)
		}
	case guardFullyPaid:
		if o.paymentStatus != PaymentPaid {
			return fmt.Errorf("%w: %s requires the order to be fully paid", ErrPaymentPrecondition, action)
		}
	case guardNone:
	}
	return nil
}

// stampTimestamp sets the action's commit time. Predecessor checks guarantee
// each transition runs at most once, so each field is written at most once.
func (o *Order) stampTimestamp(action Action, now time.Time) {
	switch action {
	case ActionAdminApproval:
		o.timestamps.AdminApprovedAt = &now
	case ActionSellerApproval:
		o.timestamps.SellerApprovedAt = &now
	case ActionStartWork:
		o.timestamps.WorkStartedAt = &now
	case ActionCompleteWork:
		o.timestamps.WorkCompletedAt = &now
	case ActionAssignPickup:
		o.timestamps.DeliveryScheduledAt = &now
	case ActionPickUp:
		o.timestamps.DeliveryPickedUpAt = &now
	case ActionMarkDelivered:
		o.timestamps.DeliveredAt = &now
	case ActionComplete:
		o.timestamps.CompletedAt = &now
	default:
	}
}

// applySideEffects records actor assignments implied by the action.
func (o *Order) applySideEffects(req TransitionRequest) {
	switch req.Action {
	case ActionAdminApproval:
		approver := req.Actor.ID
		o.adminApproverID = &approver
	case ActionAssignPickup:
		o.deliveryPersonID = req.DeliveryPersonID
	default:
	}
}

// keepNote stores the advisory note on the acting role's notes field.
// Buyer notes live only on the history entry.
func (o *Order) keepNote(role Role, note string) {
	if note == "" {
		return
	}
	switch role {
	case RoleAdmin:
		o.notes.Admin = note
	case RoleSeller:
		o.notes.Seller = note
	case RoleDelivery:
		o.notes.Delivery = note
	default:
	}
}
