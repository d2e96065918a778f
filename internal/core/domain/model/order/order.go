package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderAlreadyAssigned is returned when assigning a courier to an
	// order that already has one.
	ErrOrderAlreadyAssigned = errors.New("order already has an assigned courier")
	// ErrOrderNotAssigned is returned when releasing an order without a courier.
	ErrOrderNotAssigned = errors.New("order has no assigned courier")
	// ErrPaymentAlreadySettled is returned when settling a payment on an
	// order whose payment is already recorded.
	ErrPaymentAlreadySettled = errors.New("payment already settled")
)

// Order is the aggregate root for a marketplace delivery order. It is the
// single source of truth the dispatch coordinator, the lifecycle manager,
// and the payment reconciler must agree on.
//
// Invariants:
//   - status only moves forward through the transition graph, except for
//     the universal Cancelled escape;
//   - paymentID is set at most once, on successful settlement;
//   - the courier reference is weak: the order never owns courier lifecycle;
//   - finishedAt is stamped on entering Delivered or Completed.
type Order struct {
	id kernel.UUID

	// courierID is the assigned courier (nil while unassigned).
	courierID *kernel.UUID

	// merchantID is the selling merchant credited on accrual (nil for
	// orders without a merchant party).
	merchantID *kernel.UUID

	// destination is the delivery point; nil when the customer supplied no
	// usable coordinates. Scoring then falls back to a sentinel distance.
	destination *kernel.GeoPoint

	totalAmount float64
	deliveryFee float64

	status          Status
	paymentStatus   PaymentStatus
	paymentProvider string
	paymentID       string

	createdAt  time.Time
	finishedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Created status with a pending payment.
// destination and merchantID may be nil; totalAmount must be positive and
// deliveryFee non-negative and below the total.
func NewOrder(
	id kernel.UUID,
	totalAmount float64,
	deliveryFee float64,
	destination *kernel.GeoPoint,
	merchantID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		status:        Created,
		paymentStatus: PaymentPending,
		createdAt:     time.Now().UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setAmounts(totalAmount, deliveryFee),
		o.setDestination(destination),
		o.setMerchantID(merchantID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts any valid lifecycle state.
func RestoreOrder(
	id kernel.UUID,
	totalAmount float64,
	deliveryFee float64,
	destination *kernel.GeoPoint,
	merchantID *kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	paymentProvider string,
	paymentID string,
	createdAt time.Time,
	finishedAt *time.Time,
) (*Order, error) {
	o := &Order{
		paymentProvider: paymentProvider,
		paymentID:       paymentID,
		createdAt:       createdAt,
		finishedAt:      finishedAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setAmounts(totalAmount, deliveryFee),
		o.setDestination(destination),
		o.setMerchantID(merchantID),
		o.setCourierID(courierID),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Courier returns the assigned courier id, nil while unassigned.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// Merchant returns the merchant id, nil when the order has no merchant party.
func (o *Order) Merchant() *kernel.UUID { return o.merchantID }

// Destination returns the delivery point, nil when coordinates are unknown.
func (o *Order) Destination() *kernel.GeoPoint { return o.destination }

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 { return o.totalAmount }

// DeliveryFee returns the computed delivery fee; zero means "use the
// configured fallback fee" at accrual time.
func (o *Order) DeliveryFee() float64 { return o.deliveryFee }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the current payment settlement state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentProvider returns the gateway that settled the payment, if any.
func (o *Order) PaymentProvider() string { return o.paymentProvider }

// PaymentID returns the provider transaction id, empty until settlement.
func (o *Order) PaymentID() string { return o.paymentID }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// FinishedAt returns the completion timestamp, nil while in flight.
func (o *Order) FinishedAt() *time.Time { return o.finishedAt }

// IsPaid reports whether the payment has settled.
func (o *Order) IsPaid() bool { return o.paymentStatus == PaymentPaid }

// Assign attaches a courier and moves the order to Assigned.
// Fails with ErrOrderAlreadyAssigned when a courier is already attached,
// which is the domain half of the "assign only if still unassigned" guard;
// the storage layer enforces the same condition on write.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrOrderAlreadyAssigned
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Release detaches the courier after a rejection and returns the order to
// Created so dispatch can run again.
func (o *Order) Release() error {
	if o.courierID == nil {
		return ErrOrderNotAssigned
	}

	if o.status != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to release", o.status))
	}

	o.status = Created
	o.courierID = nil
	return nil
}

// TransitionTo moves the order to next, enforcing the transition graph.
// Entering Delivered or Completed stamps finishedAt.
func (o *Order) TransitionTo(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.applyStatus(newStatus)
	return nil
}

// ForceTransition moves the order to next without consulting the transition
// graph. This is the explicit administrative escape hatch; regular flows
// must use TransitionTo.
func (o *Order) ForceTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	o.applyStatus(next)
	return nil
}

// SettlePayment records a completed gateway payment exactly once.
// The provider transaction id can never be overwritten.
func (o *Order) SettlePayment(provider string, transactionID string) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}

	if o.paymentStatus == PaymentPaid {
		return ErrPaymentAlreadySettled
	}

	o.paymentStatus = PaymentPaid
	o.paymentProvider = provider
	o.paymentID = transactionID
	return nil
}

func (o *Order) applyStatus(next Status) {
	o.status = next

	if next == Cancelled && o.paymentStatus == PaymentPending {
		o.paymentStatus = PaymentCancelled
	}

	if (next == Delivered || next == Completed) && o.finishedAt == nil {
		now := time.Now().UTC()
		o.finishedAt = &now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAmounts(totalAmount float64, deliveryFee float64) error {
	if totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%v is not greater than 0", totalAmount))
	}
	if deliveryFee < 0 || deliveryFee > totalAmount {
		return errs.NewValueIsOutOfRangeError("deliveryFee", deliveryFee, 0, totalAmount)
	}

	o.totalAmount = totalAmount
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setDestination(destination *kernel.GeoPoint) error {
	if destination == nil {
		return nil
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setMerchantID(merchantID *kernel.UUID) error {
	if merchantID == nil {
		return nil
	}
	if err := merchantID.Validate(); err != nil {
		return err
	}
	o.merchantID = merchantID
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	o.courierID = courierID
	return nil
}
