package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/dispatchlog"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ReleaseOrderCommandHandler handles courier rejections. The order returns
// to Created status, the decline lands in the attempt log as a Rejected row,
// and the next dispatch run (or the retry job) picks the order up again. The
// conditional write guards against releasing an order that has already moved
// past Assigned.
type ReleaseOrderCommandHandler struct {
	uowFactory ReleaseUoWFactory
}

// NewReleaseOrderCommandHandler creates a handler for order release.
func NewReleaseOrderCommandHandler(uowFactory ReleaseUoWFactory) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command.
func (h ReleaseOrderCommandHandler) Handle(ctx context.Context, command ReleaseOrderCommand) error {
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

	released := aggregate.Courier()

	if err = aggregate.Release(); err != nil {
		return err
	}

	// The decline is part of the attempt trail; the score slot carries
	// nothing for a rejection.
	rejection, err := dispatchlog.NewAttempt(aggregate.ID(), *released, 0, dispatchlog.Rejected)
	if err != nil {
		return err
	}
	if err = uow.DispatchLogRepository().Add(ctx, rejection); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, order.Assigned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
