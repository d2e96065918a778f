package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// UpdateCourierLocationCommandHandler persists GPS pings. The last-known
// position feeds the distance axis of dispatch scoring and the customer
// tracking view.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for GPS pings.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location update command.
func (h UpdateCourierLocationCommandHandler) Handle(
	ctx context.Context,
	command UpdateCourierLocationCommand,
) error {
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

	aggregate, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCourierNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.MoveTo(command.Location()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
