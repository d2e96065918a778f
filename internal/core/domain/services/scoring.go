package services

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

const (
	// sentinelDistanceKm substitutes for the real distance when either the
	// courier or the order lacks usable coordinates. The candidate then
	// scores 0 on the distance axis but stays in consideration.
	sentinelDistanceKm = 999.0

	// responseScore is a placeholder: no historical responsiveness data is
	// tracked yet, so every candidate scores the maximum on this axis.
	responseScore = 100.0
)

// Weights is the four-tuple controlling how the scoring axes are blended.
// Operators tune it at runtime through the weights configuration file.
type Weights struct {
	Distance float64 `json:"distance"`
	Rating   float64 `json:"rating"`
	Workload float64 `json:"workload"`
	Response float64 `json:"response"`
}

// DefaultWeights returns the nominal weight configuration, also used as the
// fallback whenever the configured weights are unreadable or invalid.
func DefaultWeights() Weights {
	return Weights{
		Distance: 0.40,
		Rating:   0.25,
		Workload: 0.20,
		Response: 0.15,
	}
}

// IsValid reports whether the weights are usable: all non-negative with a
// positive sum. Callers fall back to DefaultWeights otherwise.
func (w Weights) IsValid() bool {
	if w.Distance < 0 || w.Rating < 0 || w.Workload < 0 || w.Response < 0 {
		return false
	}
	return w.Distance+w.Rating+w.Workload+w.Response > 0
}

// DistanceScore normalizes a distance in kilometers to [0..100].
// Desirability decays linearly to zero at 10 km; farther couriers score 0
// but are not excluded.
func DistanceScore(distanceKm float64) float64 {
	return max(0, 100-distanceKm*10)
}

// RatingScore maps the 0-5 rating domain onto [0..100].
func RatingScore(rating float64) float64 {
	return rating * 20
}

// WorkloadScore normalizes the completed-deliveries workload proxy onto
// [0..100]; busier couriers score lower, floored at 0.
func WorkloadScore(completedDeliveries int) float64 {
	return max(0, 100-float64(completedDeliveries)*2)
}

// Score computes the weighted desirability of assigning o to c.
// It is pure: the caller supplies the weight snapshot. Missing coordinates
// on either side yield the sentinel distance rather than an error.
func Score(c *courier.Courier, o *order.Order, w Weights) float64 {
	distanceKm := sentinelDistanceKm
	if c.Location() != nil && o.Destination() != nil {
		if km, err := c.Location().DistanceKm(*o.Destination()); err == nil {
			distanceKm = km
		}
	}

	return w.Distance*DistanceScore(distanceKm) +
		w.Rating*RatingScore(c.Rating()) +
		w.Workload*WorkloadScore(c.CompletedDeliveries()) +
		w.Response*responseScore
}
