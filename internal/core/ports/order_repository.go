package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their lifecycle status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists changes to an existing order only if its
	// stored status still equals expected. Returns errs.ErrVersionConflict
	// when the row was concurrently moved out of the expected status,
	// which is how competing dispatch runs lose the assignment race.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves all orders in Created status awaiting
	// dispatch. Used by the dispatch retry job to pick up stuck orders.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)
}
