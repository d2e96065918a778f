// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllOnline retrieves every courier currently accepting orders.
	// This is the candidate pool the dispatch coordinator scores; Offline
	// couriers are never considered.
	GetAllOnline(ctx context.Context) ([]*courier.Courier, error)

	// Count reports how many couriers are registered regardless of status.
	// Lets dispatch distinguish an empty fleet from one that is fully offline.
	Count(ctx context.Context) (int64, error)
}
