package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves orders through the delivery
// lifecycle and applies the side effects each milestone carries:
//
//   - Delivered increments the courier's completed-deliveries counter, which
//     in turn raises their workload in future scoring runs;
//   - Paid accrues earnings to the courier and the merchant.
//
// All side effects commit in the same transaction as the status change.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  SettlementUoWFactory
	fallbackFee float64
}

// NewUpdateOrderStatusCommandHandler creates a handler for lifecycle updates.
// fallbackFee substitutes for a zero stored delivery fee during accrual.
func NewUpdateOrderStatusCommandHandler(
	uowFactory SettlementUoWFactory,
	fallbackFee float64,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		fallbackFee: fallbackFee,
	}
}

// Handle processes the status update command.
// The write is conditional on the status the order was loaded in, so two
// concurrent updates cannot both apply.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderStatusCommand,
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

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	loadedStatus := aggregate.Status()

	if command.Force() {
		err = aggregate.ForceTransition(command.Next())
	} else {
		err = aggregate.TransitionTo(command.Next())
	}
	if err != nil {
		return err
	}

	if command.Next() == order.Delivered {
		if err = h.creditDelivery(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if command.Next() == order.Paid {
		if err = accrueEarnings(ctx, uow, aggregate, h.fallbackFee); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, loadedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) creditDelivery(
	ctx context.Context,
	uow SettlementUoW,
	aggregate *order.Order,
) error {
	courierID := aggregate.Courier()
	if courierID == nil {
		return nil
	}

	assignee, err := uow.CourierRepository().Get(ctx, *courierID)
	if err != nil {
		return err
	}

	assignee.CompleteDelivery()
	return uow.CourierRepository().Update(ctx, assignee)
}
