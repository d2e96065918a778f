package ports

import (
	"context"

	"dispatch/internal/core/domain/model/dispatchlog"
	"dispatch/internal/core/domain/model/kernel"
)

// DispatchLogRepository defines the persistence contract for the dispatch
// attempt audit trail. One row is written per evaluated candidate per run.
type DispatchLogRepository interface {
	// Add persists a dispatch attempt record.
	Add(ctx context.Context, attempt *dispatchlog.Attempt) error

	// CountForOrder returns how many attempt records exist for the order.
	// The retry job uses this to stop re-dispatching hopeless orders.
	CountForOrder(ctx context.Context, orderID kernel.UUID) (int64, error)
}
