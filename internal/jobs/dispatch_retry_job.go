package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultMaxAttempts bounds how many dispatch runs an order gets before the
// retry job stops picking it up and leaves it to an operator.
const DefaultMaxAttempts = 10

// DispatchRetryJob periodically sweeps orders still waiting for a courier
// and re-runs automatic dispatch on each. Orders that have exhausted their
// attempt budget are skipped.
type DispatchRetryJob struct {
	handler     commands.DispatchOrderCommandHandler
	uowFactory  commands.DispatchUoWFactory
	maxAttempts int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewDispatchRetryJob creates a job that retries dispatch every 30 seconds.
// maxAttempts <= 0 falls back to DefaultMaxAttempts.
func NewDispatchRetryJob(
	handler commands.DispatchOrderCommandHandler,
	uowFactory commands.DispatchUoWFactory,
	maxAttempts int,
	logger *slog.Logger,
) *DispatchRetryJob {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &DispatchRetryJob{
		handler:     handler,
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "dispatch_retry_job"),
	}
}

// Start begins the retry sweep on a 30 second schedule.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.runOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Dispatch retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the retry job.
func (j *DispatchRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}

// runOnce performs one sweep. Reads happen outside any transaction; each
// dispatch attempt opens its own unit of work inside the command handler.
func (j *DispatchRetryJob) runOnce(ctx context.Context) {
	uow := j.uowFactory.Create()

	waiting, err := uow.OrderRepository().GetAllUnassigned(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load unassigned orders", "error", err)
		return
	}

	for _, aggregate := range waiting {
		attempts, countErr := uow.DispatchLogRepository().CountForOrder(ctx, aggregate.ID())
		if countErr != nil {
			j.logger.ErrorContext(ctx, "Failed to count dispatch attempts",
				"order_id", aggregate.ID().String(), "error", countErr)
			continue
		}
		if attempts >= int64(j.maxAttempts) {
			j.logger.WarnContext(ctx, "Order exhausted dispatch attempts",
				"order_id", aggregate.ID().String(), "attempts", attempts)
			continue
		}

		j.dispatch(ctx, aggregate.ID())
	}
}

func (j *DispatchRetryJob) dispatch(ctx context.Context, orderID kernel.UUID) {
	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build dispatch command",
			"order_id", orderID.String(), "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		// Expected business outcomes: the fleet is empty or offline, a
		// concurrent run won, or someone assigned the order in between.
		if errors.Is(err, commands.ErrNoCouriers) ||
			errors.Is(err, commands.ErrNoOnlineCouriers) ||
			errors.Is(err, commands.ErrOrderNotDispatchable) ||
			errors.Is(err, errs.ErrVersionConflict) {
			j.logger.DebugContext(ctx, "Dispatch retry deferred",
				"order_id", orderID.String(), "reason", err)
			return
		}
		j.logger.ErrorContext(ctx, "Dispatch retry failed",
			"order_id", orderID.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Dispatch retry assigned a courier",
		"order_id", orderID.String(),
		"courier_id", result.CourierID,
		"score", result.Score)
}
