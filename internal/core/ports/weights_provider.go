package ports

import (
	"dispatch/internal/core/domain/services"
)

// WeightsProvider supplies the current scoring weight snapshot. The dispatch
// coordinator reads one snapshot per run, so a mid-run configuration reload
// never mixes weight sets.
type WeightsProvider interface {
	// Weights returns a usable weight snapshot. Implementations never fail:
	// on unreadable or invalid configuration they fall back to
	// services.DefaultWeights.
	Weights() services.Weights
}
