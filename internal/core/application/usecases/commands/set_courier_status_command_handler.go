package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// SetCourierStatusCommandHandler toggles courier availability. Going offline
// does not affect orders already assigned to the courier.
type SetCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierStatusCommandHandler creates a handler for availability toggles.
func NewSetCourierStatusCommandHandler(uowFactory CourierUoWFactory) SetCourierStatusCommandHandler {
	return SetCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle command.
func (h SetCourierStatusCommandHandler) Handle(
	ctx context.Context,
	command SetCourierStatusCommand,
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

	if command.Online() {
		aggregate.SetOnline()
	} else {
		aggregate.SetOffline()
	}

	if err = uow.CourierRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
