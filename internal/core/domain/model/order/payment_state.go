package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DepositStatus tracks whether the up-front deposit has been collected.
type DepositStatus int

const (
	// DepositUnpaid means no deposit has been recorded.
	DepositUnpaid DepositStatus = iota

	// DepositPaid means the deposit payment was recorded.
	DepositPaid
)

// String returns the machine key of the deposit status.
func (s DepositStatus) String() string {
	if s == DepositPaid {
		return "paid"
	}
	return "unpaid"
}

// Validate checks the DepositStatus value.
func (s DepositStatus) Validate() error {
	if s != DepositUnpaid && s != DepositPaid {
		return errs.NewValueIsInvalidErrorWithCause("depositStatus",
			fmt.Errorf("%d is not a valid deposit status", s))
	}
	return nil
}

// DepositStatusFromString maps a machine key back to its DepositStatus.
func DepositStatusFromString(key string) (DepositStatus, error) {
	switch key {
	case "unpaid":
		return DepositUnpaid, nil
	case "paid":
		return DepositPaid, nil
	default:
		return DepositUnpaid, errs.NewValueIsInvalidErrorWithCause("depositStatus",
			fmt.Errorf("%q is not a known deposit status key", key))
	}
}

// PaymentStatus tracks how much of the total price has been collected.
type PaymentStatus int

const (
	// PaymentUnpaid means no money has been collected.
	PaymentUnpaid PaymentStatus = iota

	// PaymentPartiallyPaid means the deposit has been collected but not the
	// remaining balance.
	PaymentPartiallyPaid

	// PaymentPaid means the full total price has been collected.
	PaymentPaid
)

// String returns the machine key of the payment status.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPartiallyPaid:
		return "partially_paid"
	case PaymentPaid:
		return "paid"
	default:
		return "unpaid"
	}
}

// Validate checks the PaymentStatus value.
func (s PaymentStatus) Validate() error {
	if s != PaymentUnpaid && s != PaymentPartiallyPaid && s != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// PaymentStatusFromString maps a machine key back to its PaymentStatus.
func PaymentStatusFromString(key string) (PaymentStatus, error) {
	switch key {
	case "unpaid":
		return PaymentUnpaid, nil
	case "partially_paid":
		return PaymentPartiallyPaid, nil
	case "paid":
		return PaymentPaid, nil
	default:
		return PaymentUnpaid, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a known payment status key", key))
	}
}
