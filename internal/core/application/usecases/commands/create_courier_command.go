package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrCourierNameIsRequired = errors.New("name is required")
)

// CreateCourierCommand represents a request to register a new courier
// profile, typically when a marketplace user is promoted to the courier role.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	phone     string
	rating    float64

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Rating seeds the scoring profile and must lie in [0..5]; promote flows
// usually pass a neutral midpoint for couriers with no history.
func NewCreateCourierCommand(
	courierID kernel.UUID,
	name string,
	phone string,
	rating float64,
) (CreateCourierCommand, error) {
	courierCommand := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courierCommand.setCourierID(courierID),
		courierCommand.setName(name),
		courierCommand.setRating(rating),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	courierCommand.phone = phone
	return courierCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the unique identifier for the courier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c CreateCourierCommand) Phone() string {
	return c.phone
}

// Rating returns the initial rating in [0..5].
func (c CreateCourierCommand) Rating() float64 {
	return c.rating
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrCourierNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setRating(rating float64) error {
	if rating < courier.MinRating || rating > courier.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, courier.MinRating, courier.MaxRating)
	}

	c.rating = rating
	return nil
}
