package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order through its delivery lifecycle.
// Regular callers (the courier app) get strict transition checking; Force is
// the administrative escape hatch that skips the transition graph.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status
	force   bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to next.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	next order.Status,
	force bool,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		next.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		next:    next,
		force:   force,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the target lifecycle status.
func (c UpdateOrderStatusCommand) Next() order.Status {
	return c.next
}

// Force reports whether the transition graph should be bypassed.
func (c UpdateOrderStatusCommand) Force() bool {
	return c.force
}
