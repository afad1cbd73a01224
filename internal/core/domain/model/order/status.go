package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// The set of legal movements between statuses is defined by the transition
// table in rules.go; Status itself only knows its identity and labels.
//
// Happy path:
//
//	Pending ─> AdminApproved ─> SellerApproved ─> WorkStarted ─> WorkCompleted
//	        ─> ReadyForDelivery ─> AssignedToPickup ─> OutForDelivery
//	        ─> Delivered ─> Completed
//
// Escape states: Cancelled and Suspended are reachable from every status up to
// OutForDelivery. Refunded is reachable only from Completed or Cancelled.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order awaits platform approval.
	StatusPending

	// StatusAdminApproved means a platform admin accepted the order.
	StatusAdminApproved

	// StatusSellerApproved means the seller committed to fulfilling the order.
	StatusSellerApproved

	// StatusWorkStarted means the seller began production/work.
	StatusWorkStarted

	// StatusWorkCompleted means the seller finished production/work.
	StatusWorkCompleted

	// StatusReadyForDelivery means the finished order awaits pickup assignment.
	StatusReadyForDelivery

	// StatusAssignedToPickup means a delivery person was assigned for pickup.
	StatusAssignedToPickup

	// StatusOutForDelivery means the delivery person collected the order.
	StatusOutForDelivery

	// StatusDelivered means the order reached the buyer.
	StatusDelivered

	// StatusCompleted means the buyer closed out the order.
	StatusCompleted

	// StatusCancelled means the order was abandoned before delivery.
	// Paid deposits are not reversed automatically; see StatusRefunded.
	StatusCancelled

	// StatusSuspended means a platform admin froze the order.
	StatusSuspended

	// StatusRefunded tags an order whose payments were reversed after an
	// explicit refund action. Terminal.
	StatusRefunded
)

// getStatusStrings returns the machine keys for every Status value.
// These keys are what persistence and transport layers exchange.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:          "unknown",
		StatusPending:          "pending",
		StatusAdminApproved:    "admin_approved",
		StatusSellerApproved:   "seller_approved",
		StatusWorkStarted:      "work_started",
		StatusWorkCompleted:    "work_completed",
		StatusReadyForDelivery: "ready_for_delivery",
		StatusAssignedToPickup: "assigned_to_pickup",
		StatusOutForDelivery:   "out_for_delivery",
		StatusDelivered:        "delivered",
		StatusCompleted:        "completed",
		StatusCancelled:        "cancelled",
		StatusSuspended:        "suspended",
		StatusRefunded:         "refunded",
	}
}

// getStatusLabels returns the human-readable labels used in history notes.
func getStatusLabels() map[Status]string {
	//nolint:exhaustive // StatusUnknown has no label on purpose
	return map[Status]string{
		StatusPending:          "Pending",
		StatusAdminApproved:    "Admin Approved",
		StatusSellerApproved:   "Seller Approved",
		StatusWorkStarted:      "Work Started",
		StatusWorkCompleted:    "Work Completed",
		StatusReadyForDelivery: "Ready for Delivery",
		StatusAssignedToPickup: "Assigned to Pickup",
		StatusOutForDelivery:   "Out for Delivery",
		StatusDelivered:        "Delivered",
		StatusCompleted:        "Completed",
		StatusCancelled:        "Cancelled",
		StatusSuspended:        "Suspended",
		StatusRefunded:         "Refunded",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the machine key of the status, e.g. "work_started".
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label returns the human-readable label of the status, e.g. "Work Started".
// Labels appear in history notes and user-facing messages.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// StatusFromString maps a machine key back to its Status.
// Returns an error for unrecognized keys.
func StatusFromString(key string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == key && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known status key", key))
}

// StatusFromLabel maps a human-readable label back to its Status.
// Used when extracting the prior status from legacy history notes; unrecognized
// labels produce an explicit error rather than a silent zero value.
func StatusFromLabel(label string) (Status, error) {
	for status, l := range getStatusLabels() {
		if l == label {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known status label", label))
}
