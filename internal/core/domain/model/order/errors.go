package order

import "errors"

// Typed rejections produced by the lifecycle state machine and the money
// ledger. Every guard failure wraps exactly one of these sentinels so callers
// can classify the outcome with errors.Is; a generic failure is never
// returned for a guard violation.
var (
	// ErrUnauthorized means the acting party may not perform the action on
	// this order.
	ErrUnauthorized = errors.New("actor is not authorized for this action")

	// ErrInvalidTransition means the order is not in a predecessor status of
	// the requested action. Re-applying an action whose result status already
	// holds fails with this error.
	ErrInvalidTransition = errors.New("transition is not allowed from the current status")

	// ErrPaymentPrecondition means a payment guard on the transition failed.
	ErrPaymentPrecondition = errors.New("payment precondition for this action is not met")

	// ErrAlreadyPaid means the requested payment was already collected.
	ErrAlreadyPaid = errors.New("payment has already been made")

	// ErrDepositExceedsCap means the deposit amount is above the configured
	// share of the total price.
	ErrDepositExceedsCap = errors.New("deposit exceeds the allowed share of the total price")

	// ErrDepositRequired means the remaining payment cannot be collected
	// before the required deposit.
	ErrDepositRequired = errors.New("deposit is required before the remaining payment")

	// ErrLedgerIntegrity means the stored ledger values contradict each
	// other, such as a recorded deposit above the total price. This is a
	// data fault, not a guard rejection; callers must log it and refuse the
	// operation.
	ErrLedgerIntegrity = errors.New("ledger values are inconsistent")
)
