package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinRating and MaxRating bound the aggregate courier rating.
	MinRating = 0.0
	MaxRating = 5.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the aggregate root for a delivery courier.
//
// State the dispatch core mutates:
//   - operational status (Online/Offline)
//   - last-known position, updated by GPS pings
//   - completed deliveries count, the workload proxy used by scoring
//   - balance, credited by earnings accrual and never decremented here
type Courier struct {
	id    kernel.UUID
	name  string
	phone string

	status Status

	// location is the last-known position; nil until the first ping.
	location *kernel.GeoPoint

	// rating is the aggregate customer rating in [0..5].
	rating float64

	completedDeliveries int
	balance             float64

	guard guard.ConstructorGuard
}

// NewCourier creates a courier profile when a user is promoted to the
// courier role. New couriers start Offline with no known position, an empty
// delivery history, and a zero balance.
func NewCourier(id kernel.UUID, name string, phone string, rating float64) (*Courier, error) {
	c := &Courier{
		status: Offline,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRating(rating),
	); err != nil {
		return nil, err
	}

	c.phone = phone
	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	status Status,
	location *kernel.GeoPoint,
	rating float64,
	completedDeliveries int,
	balance float64,
) (*Courier, error) {
	c := &Courier{
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRating(rating),
		status.Validate(),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	if completedDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedDeliveries",
			fmt.Errorf("%d is negative", completedDeliveries))
	}
	if balance < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%v is negative", balance))
	}

	c.status = status
	c.completedDeliveries = completedDeliveries
	c.balance = balance
	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's contact phone.
func (c *Courier) Phone() string { return c.phone }

// Status returns the operational status.
func (c *Courier) Status() Status { return c.status }

// IsOnline reports whether the courier accepts new orders.
func (c *Courier) IsOnline() bool { return c.status == Online }

// Location returns the last-known position, nil before the first ping.
func (c *Courier) Location() *kernel.GeoPoint { return c.location }

// Rating returns the aggregate customer rating in [0..5].
func (c *Courier) Rating() float64 { return c.rating }

// CompletedDeliveries returns the workload proxy used by scoring.
func (c *Courier) CompletedDeliveries() int { return c.completedDeliveries }

// Balance returns the accrued balance.
func (c *Courier) Balance() float64 { return c.balance }

// SetOnline marks the courier as accepting orders.
func (c *Courier) SetOnline() { c.status = Online }

// SetOffline marks the courier as unavailable.
func (c *Courier) SetOffline() { c.status = Offline }

// MoveTo records a GPS ping as the courier's last-known position.
func (c *Courier) MoveTo(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.location = &point
	return nil
}

// CompleteDelivery increments the completed-deliveries counter when an
// order the courier carried reaches Delivered.
func (c *Courier) CompleteDelivery() {
	c.completedDeliveries++
}

// CreditBalance adds a positive earning amount to the balance.
// The core never debits courier balances.
func (c *Courier) CreditBalance(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	c.balance += amount
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	c.rating = rating
	return nil
}

func (c *Courier) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
