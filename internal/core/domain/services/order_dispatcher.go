package services

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no candidate is available for order
// dispatch: either no couriers were supplied or none passed validation.
var ErrCourierNotFound = errors.New("courier not found")

// Evaluation is the scored result for one candidate. The coordinator
// persists one dispatch attempt row per evaluation, winner or not.
type Evaluation struct {
	Courier *courier.Courier
	Score   float64
}

// OrderDispatcher is the domain service selecting the best courier for an
// order by maximum weighted score.
//
// Selection rules:
//   - every supplied candidate is scored (the caller pre-filters to Online);
//   - the strictly highest score wins;
//   - ties resolve to the lower courier UUID for reproducibility.
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Evaluate scores every candidate for the order using the supplied weight
// snapshot. Returns one Evaluation per candidate in enumeration order.
func (d OrderDispatcher) Evaluate(
	o *order.Order,
	couriers []*courier.Courier,
	w Weights,
) ([]Evaluation, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	evaluations := make([]Evaluation, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		evaluations = append(evaluations, Evaluation{
			Courier: c,
			Score:   Score(c, o, w),
		})
	}

	return evaluations, nil
}

// SelectBest returns the winning evaluation, or ErrCourierNotFound when
// there are no candidates.
func (d OrderDispatcher) SelectBest(evaluations []Evaluation) (Evaluation, error) {
	if len(evaluations) == 0 {
		return Evaluation{}, ErrCourierNotFound
	}

	best := evaluations[0]
	for _, e := range evaluations[1:] {
		if e.Score > best.Score {
			best = e
			continue
		}
		// Deterministic tie-break: lower courier id wins.
		if e.Score == best.Score && e.Courier.ID().String() < best.Courier.ID().String() {
			best = e
		}
	}

	return best, nil
}
