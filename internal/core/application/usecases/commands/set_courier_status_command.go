package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierStatusCommandIsNotConstructed = errors.New(
	"SetCourierStatusCommand must be created via NewSetCourierStatusCommand constructor",
)

// SetCourierStatusCommand toggles a courier between Online and Offline.
// Only online couriers enter the dispatch candidate pool.
type SetCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

// NewSetCourierStatusCommand creates a command toggling courier availability.
func NewSetCourierStatusCommand(courierID kernel.UUID, online bool) (SetCourierStatusCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierStatusCommand{}, err
	}

	return SetCourierStatusCommand{
		courierID: courierID,
		online:    online,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierStatusCommandIsNotConstructed)
}

// CourierID returns the courier to toggle.
func (c SetCourierStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Online reports the requested availability.
func (c SetCourierStatusCommand) Online() bool {
	return c.online
}
