package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand triggers automatic courier selection for one order.
// The coordinator scores every online courier, audits each evaluation, and
// assigns the winner.
//
// Example:
//
//	cmd, err := NewDispatchOrderCommand(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewDispatchOrderCommandHandler(uowFactory, weightsProvider)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOnlineCouriers):
//	    log.Println("No couriers available, order stays queued")
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("Assigned %s with score %.1f", result.CourierName, result.Score)
//	}
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to dispatch the given order.
func NewDispatchOrderCommand(orderID kernel.UUID) (DispatchOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DispatchOrderCommand{}, err
	}

	return DispatchOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
