package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentStatus tracks the settlement state of an order's payment,
// independent of (but reconciled with) the delivery lifecycle.
type PaymentStatus int

const (
	// PaymentUnknown catches uninitialized values.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial state: no settlement received yet.
	PaymentPending

	// PaymentPaid indicates the gateway completed the payment.
	// The provider transaction id is recorded exactly once on this transition.
	PaymentPaid

	// PaymentCancelled indicates the payment was voided together with the order.
	PaymentCancelled
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:   "Unknown",
		PaymentPending:   "Pending",
		PaymentPaid:      "Paid",
		PaymentCancelled: "Cancelled",
	}
}

// Validate checks that the value is one of the defined payment statuses.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
}

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
