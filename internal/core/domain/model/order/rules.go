package order

// Party identifies who a transition concerns beyond the acting user; every
// accepted transition names the party to notify next.
type Party int

const (
	// PartyNone means no notification target.
	PartyNone Party = iota

	// PartyBuyer targets the order's buyer.
	PartyBuyer

	// PartySeller targets the order's seller.
	PartySeller

	// PartyAdmin targets the platform admin pool.
	PartyAdmin

	// PartyDelivery targets the assigned delivery person.
	PartyDelivery
)

// String returns the machine key of the party.
func (p Party) String() string {
	switch p {
	case PartyBuyer:
		return "buyer"
	case PartySeller:
		return "seller"
	case PartyAdmin:
		return "admin"
	case PartyDelivery:
		return "delivery"
	default:
		return "none"
	}
}

// roleRequirement expresses who may perform an action, relative to the order.
// Authorization is never a bare role check except for admins: a seller may
// only act on orders where they are the seller, a delivery person only on
// orders assigned to them.
type roleRequirement int

const (
	requireAdmin roleRequirement = iota
	requireOrderSeller
	requireSellerOrAdmin
	requireAssignedDelivery
	requireBuyerOrAdmin
)

// paymentGuard expresses a monetary precondition on a transition.
type paymentGuard int

const (
	guardNone paymentGuard = iota

	// guardDepositPaidWhenRequired blocks the transition while a required
	// deposit is unpaid.
	guardDepositPaidWhenRequired

	// guardFullyPaid blocks the transition until the full price is collected.
	guardFullyPaid
)

// transitionRule is one row of the declarative transition table: the only
// place where predecessors, authorization, payment guards and notification
// targets for an action are defined.
type transitionRule struct {
	from    []Status
	to      Status
	role    roleRequirement
	payment paymentGuard
	notify  Party
}

// cancellableStatuses are the statuses an order can be cancelled or suspended
// from: everything before the order physically reaches the buyer.
func cancellableStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAdminApproved,
		StatusSellerApproved,
		StatusWorkStarted,
		StatusWorkCompleted,
		StatusReadyForDelivery,
		StatusAssignedToPickup,
		StatusOutForDelivery,
	}
}

// getTransitionRules returns the full transition table.
// Guard evaluation order is fixed: role, then predecessor status, then
// payment guard; see Order.Apply.
func getTransitionRules() map[Action]transitionRule {
	return map[Action]transitionRule{
		ActionAdminApproval: {
			from:   []Status{StatusPending},
			to:     StatusAdminApproved,
			role:   requireAdmin,
			notify: PartySeller,
		},
		ActionSellerApproval: {
			from:    []Status{StatusAdminApproved},
			to:      StatusSellerApproved,
			role:    requireOrderSeller,
			payment: guardDepositPaidWhenRequired,
			notify:  PartyBuyer,
		},
		ActionStartWork: {
			from:   []Status{StatusSellerApproved},
			to:     StatusWorkStarted,
			role:   requireOrderSeller,
			notify: PartyBuyer,
		},
		ActionCompleteWork: {
			from:   []Status{StatusSellerApproved, StatusWorkStarted},
			to:     StatusWorkCompleted,
			role:   requireOrderSeller,
			notify: PartyAdmin,
		},
		ActionMarkReady: {
			from:   []Status{StatusWorkCompleted},
			to:     StatusReadyForDelivery,
			role:   requireSellerOrAdmin,
			notify: PartyAdmin,
		},
		ActionAssignPickup: {
			from:   []Status{StatusReadyForDelivery},
			to:     StatusAssignedToPickup,
			role:   requireAdmin,
			notify: PartyDelivery,
		},
		ActionPickUp: {
			from:   []Status{StatusAssignedToPickup},
			to:     StatusOutForDelivery,
			role:   requireAssignedDelivery,
			notify: PartyBuyer,
		},
		ActionMarkDelivered: {
			from:   []Status{StatusOutForDelivery},
			to:     StatusDelivered,
			role:   requireAssignedDelivery,
			notify: PartyBuyer,
		},
		ActionComplete: {
			from:    []Status{StatusDelivered},
			to:      StatusCompleted,
			role:    requireBuyerOrAdmin,
			payment: guardFullyPaid,
			notify:  PartySeller,
		},
		ActionCancel: {
			from:   cancellableStatuses(),
			to:     StatusCancelled,
			role:   requireBuyerOrAdmin,
			notify: PartySeller,
		},
		ActionSuspend: {
			from:   cancellableStatuses(),
			to:     StatusSuspended,
			role:   requireAdmin,
			notify: PartySeller,
		},
		ActionRefund: {
			from:   []Status{StatusCompleted, StatusCancelled},
			to:     StatusRefunded,
			role:   requireAdmin,
			notify: PartyBuyer,
		},
	}
}
