package order

import (
	"fmt"

	"bakeshop/internal/pkg/errs"
)

// PaymentStatus mirrors the state of the order's payment as reported by the
// external payment collaborator. The state machine only reads it as a
// transition guard; it is never derived from order status.
type PaymentStatus int

const (
	// PaymentUnset means no payment outcome has been reported yet.
	// This is the zero value and the state of every freshly placed order.
	PaymentUnset PaymentStatus = iota

	// PaymentPaid means the payment was captured successfully.
	PaymentPaid

	// PaymentRefunded means a captured payment was returned.
	PaymentRefunded

	// PaymentFailed means the payment attempt was declined.
	PaymentFailed
)

// getPaymentStatusStrings returns a map of PaymentStatus values to their
// string representations.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnset:    "unset",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
		PaymentFailed:   "failed",
	}
}

// PaymentStatusFromString parses a payment status from its string representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentUnset, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
// Unlike Status, the zero value (PaymentUnset) is a legitimate state.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unset"
}
