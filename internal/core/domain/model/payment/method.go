package payment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Method is the payment instrument used for a monetary movement.
// The allowed set is a business parameter supplied by configuration, not a
// structural invariant, so Method is validated against a runtime list.
type Method string

const (
	// MethodNone marks orders with no payment recorded yet.
	MethodNone Method = ""
)

// DefaultMethods is the allowed set used when configuration provides none.
var DefaultMethods = []Method{"cash", "credit_card", "bank_transfer", "wallet"}

// NewMethod validates a raw method key against the allowed set.
func NewMethod(raw string, allowed []Method) (Method, error) {
	for _, m := range allowed {
		if Method(raw) == m {
			return m, nil
		}
	}
	return MethodNone, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not an allowed payment method", raw))
}

// String returns the machine key of the method.
func (m Method) String() string {
	return string(m)
}
