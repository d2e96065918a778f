package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/dispatchlog"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrNoCouriers is returned when no couriers are registered at all.
	ErrNoCouriers = errors.New("no couriers registered")

	// ErrNoOnlineCouriers is returned when couriers exist but none is online.
	// The order stays in Created status; the retry job will try again.
	ErrNoOnlineCouriers = errors.New("no online couriers available")

	// ErrOrderNotFound is returned when the dispatched order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotDispatchable is returned when the order is not in Created status.
	ErrOrderNotDispatchable = errors.New("order is not awaiting dispatch")
)

// DispatchOrderResult describes the winning assignment.
type DispatchOrderResult struct {
	CourierID   string
	CourierName string
	Score       float64
}

// DispatchOrderCommandHandler orchestrates automatic courier selection.
// One weight snapshot is read per run, every online courier is scored, every
// evaluation is persisted as an audit row, and the winner is attached with a
// conditional write so concurrent dispatch runs cannot double-assign.
type DispatchOrderCommandHandler struct {
	uowFactory      DispatchUoWFactory
	weightsProvider ports.WeightsProvider
	dispatcher      services.OrderDispatcher
}

// NewDispatchOrderCommandHandler creates a handler for automatic dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	weightsProvider ports.WeightsProvider,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:      uowFactory,
		weightsProvider: weightsProvider,
		dispatcher:      services.NewOrderDispatcher(),
	}
}

// Handle processes the dispatch command.
//
// Flow: load the order (must be Created), load online couriers, score all of
// them with one weight snapshot, persist exactly one attempt per candidate
// (the winner's row marked Won), then assign conditionally on the order
// still being Created. A version conflict means a concurrent run won; the
// caller sees errs.ErrVersionConflict and the audit rows roll back with the
// transaction.
func (h DispatchOrderCommandHandler) Handle(
	ctx context.Context,
	command DispatchOrderCommand,
) (DispatchOrderResult, error) {
	if err := command.Validate(); err != nil {
		return DispatchOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return DispatchOrderResult{}, ErrOrderNotFound
	}
	if err != nil {
		return DispatchOrderResult{}, err
	}

	if aggregate.Status() != order.Created {
		return DispatchOrderResult{}, ErrOrderNotDispatchable
	}

	couriers, err := uow.CourierRepository().GetAllOnline(ctx)
	if err != nil {
		return DispatchOrderResult{}, err
	}
	if len(couriers) == 0 {
		total, countErr := uow.CourierRepository().Count(ctx)
		if countErr != nil {
			return DispatchOrderResult{}, countErr
		}
		if total == 0 {
			return DispatchOrderResult{}, ErrNoCouriers
		}
		return DispatchOrderResult{}, ErrNoOnlineCouriers
	}

	weights := h.weightsProvider.Weights()

	evaluations, err := h.dispatcher.Evaluate(aggregate, couriers, weights)
	if err != nil {
		return DispatchOrderResult{}, err
	}

	best, err := h.dispatcher.SelectBest(evaluations)
	if err != nil {
		return DispatchOrderResult{}, err
	}

	// One row per candidate per round; the winner's row carries the outcome.
	for _, evaluation := range evaluations {
		outcome := dispatchlog.Evaluated
		if evaluation.Courier.ID().IsEqual(best.Courier.ID()) {
			outcome = dispatchlog.Won
		}

		attempt, attemptErr := dispatchlog.NewAttempt(
			aggregate.ID(), evaluation.Courier.ID(), evaluation.Score, outcome)
		if attemptErr != nil {
			return DispatchOrderResult{}, attemptErr
		}
		if attemptErr = uow.DispatchLogRepository().Add(ctx, attempt); attemptErr != nil {
			return DispatchOrderResult{}, attemptErr
		}
	}

	if err = aggregate.Assign(best.Courier.ID()); err != nil {
		return DispatchOrderResult{}, err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, order.Created); err != nil {
		return DispatchOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchOrderResult{}, err
	}

	return DispatchOrderResult{
		CourierID:   best.Courier.ID().String(),
		CourierName: best.Courier.Name(),
		Score:       best.Score,
	}, nil
}
