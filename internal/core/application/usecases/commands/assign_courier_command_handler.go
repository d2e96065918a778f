package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrCourierNotFound is returned when the courier named by a command does
// not exist.
var ErrCourierNotFound = errors.New("courier not found")

// AssignCourierCommandHandler handles manual courier assignment. Unlike
// automatic dispatch it skips scoring and the audit trail, but it uses the
// same conditional write so an operator cannot overwrite a concurrent
// assignment.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignCourierCommandHandler creates a handler for manual assignment.
func NewAssignCourierCommandHandler(uowFactory UoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual assignment command.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	// The courier must exist even though it may be offline.
	if _, err = uow.CourierRepository().Get(ctx, command.CourierID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrCourierNotFound
		}
		return err
	}

	if err = aggregate.Assign(command.CourierID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, order.Created); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
