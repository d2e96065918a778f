package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseOrderCommandIsNotConstructed = errors.New(
	"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
)

// ReleaseOrderCommand detaches the assigned courier from an order after a
// rejection, returning the order to the dispatch queue.
type ReleaseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseOrderCommand creates a command to release an assigned order.
func NewReleaseOrderCommand(orderID kernel.UUID) (ReleaseOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReleaseOrderCommand{}, err
	}

	return ReleaseOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

// OrderID returns the order to release.
func (c ReleaseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
