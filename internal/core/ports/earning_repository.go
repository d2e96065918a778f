package ports

import (
	"context"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
)

// EarningRepository defines the persistence contract for earning records.
// Earnings are append-only: accrual creates them, nothing mutates them.
type EarningRepository interface {
	// Add persists a new earning record.
	Add(ctx context.Context, aggregate *earning.Earning) error

	// ExistsForOrder reports whether an earning of the given type was
	// already accrued for the order. Accrual checks this inside the same
	// transaction to stay idempotent under webhook replays.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID, typ earning.Type) (bool, error)
}
