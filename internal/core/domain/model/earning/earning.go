// Package earning implements the Earning ledger entity: one row per
// payout-triggering event, created exactly once per qualifying order status
// transition and settled by an out-of-scope payout process.
package earning

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrEarningIsNotConstructed is returned when using an improperly
// initialized Earning.
var ErrEarningIsNotConstructed = errors.New("Earning must be created via NewEarning constructor")

// Type classifies who an earning pays and for what.
type Type int

const (
	// TypeUnknown catches uninitialized values.
	TypeUnknown Type = iota

	// DeliveryFee pays the courier the delivery fee.
	DeliveryFee

	// ProductSale pays the merchant the sale proceeds (total minus fee).
	ProductSale
)

// Validate checks that the value is one of the defined types.
func (t Type) Validate() error {
	switch t {
	case DeliveryFee, ProductSale:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid earning type", t))
	}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case DeliveryFee:
		return "DeliveryFee"
	case ProductSale:
		return "ProductSale"
	default:
		return "Unknown"
	}
}

// Status is the settlement state of an earning.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// Pending means the earning is accrued but not yet paid out.
	Pending

	// Settled means the payout completed (driven by an external process).
	Settled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Settled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// Earning is one ledger row. At most one earning of each Type may exist per
// order; the storage layer enforces this with a unique index and the accrual
// use case checks it inside the accrual transaction.
type Earning struct {
	id          kernel.UUID
	orderID     kernel.UUID
	recipientID kernel.UUID
	typ         Type
	amount      float64
	status      Status
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewEarning creates a Pending earning for the given recipient.
func NewEarning(
	id kernel.UUID,
	orderID kernel.UUID,
	recipientID kernel.UUID,
	typ Type,
	amount float64,
) (*Earning, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipientID.Validate(),
		typ.Validate(),
	); err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}

	return &Earning{
		id:          id,
		orderID:     orderID,
		recipientID: recipientID,
		typ:         typ,
		amount:      amount,
		status:      Pending,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreEarning reconstructs an Earning from persistent storage.
func RestoreEarning(
	id kernel.UUID,
	orderID kernel.UUID,
	recipientID kernel.UUID,
	typ Type,
	amount float64,
	status Status,
	createdAt time.Time,
) (*Earning, error) {
	e, err := NewEarning(id, orderID, recipientID, typ, amount)
	if err != nil {
		return nil, err
	}

	e.status = status
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the Earning was created through a constructor.
func (e *Earning) Validate() error {
	if e == nil {
		return ErrEarningIsNotConstructed
	}
	return e.guard.Validate(ErrEarningIsNotConstructed)
}

// ID returns the earning identifier.
func (e *Earning) ID() kernel.UUID { return e.id }

// OrderID returns the order that triggered the earning.
func (e *Earning) OrderID() kernel.UUID { return e.orderID }

// RecipientID returns the courier or merchant being paid.
func (e *Earning) RecipientID() kernel.UUID { return e.recipientID }

// Type returns the earning classification.
func (e *Earning) Type() Type { return e.typ }

// Amount returns the payout amount.
func (e *Earning) Amount() float64 { return e.amount }

// Status returns the settlement state.
func (e *Earning) Status() Status { return e.status }

// CreatedAt returns the accrual timestamp.
func (e *Earning) CreatedAt() time.Time { return e.createdAt }
