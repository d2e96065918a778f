// Package dispatchlog implements the append-only dispatch attempt log: one
// row per (order, courier) scoring evaluation, making assignment decisions
// explainable and replayable. Rows are never mutated after creation.
package dispatchlog

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAttemptIsNotConstructed is returned when using an improperly
// initialized Attempt.
var ErrAttemptIsNotConstructed = errors.New("Attempt must be created via NewAttempt constructor")

// Outcome records what happened to one evaluated candidate.
type Outcome int

const (
	// OutcomeUnknown catches uninitialized values.
	OutcomeUnknown Outcome = iota

	// Evaluated means the candidate was scored; every evaluation writes
	// one row regardless of the dispatch result.
	Evaluated

	// Won means this candidate received the assignment.
	Won

	// Rejected means the courier declined the assignment afterwards.
	Rejected
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Evaluated:
		return "Evaluated"
	case Won:
		return "Won"
	case Rejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Attempt is one audit row of the dispatch coordinator.
type Attempt struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	score     float64
	outcome   Outcome
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewAttempt creates an audit row for one scoring evaluation.
func NewAttempt(
	orderID kernel.UUID,
	courierID kernel.UUID,
	score float64,
	outcome Outcome,
) (*Attempt, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &Attempt{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		courierID: courierID,
		score:     score,
		outcome:   outcome,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Attempt was created through the constructor.
func (a *Attempt) Validate() error {
	if a == nil {
		return ErrAttemptIsNotConstructed
	}
	return a.guard.Validate(ErrAttemptIsNotConstructed)
}

// ID returns the attempt identifier.
func (a *Attempt) ID() kernel.UUID { return a.id }

// OrderID returns the dispatched order.
func (a *Attempt) OrderID() kernel.UUID { return a.orderID }

// CourierID returns the evaluated candidate.
func (a *Attempt) CourierID() kernel.UUID { return a.courierID }

// Score returns the computed desirability score.
func (a *Attempt) Score() float64 { return a.score }

// Outcome returns the evaluation result.
func (a *Attempt) Outcome() Outcome { return a.outcome }

// CreatedAt returns the evaluation timestamp.
func (a *Attempt) CreatedAt() time.Time { return a.createdAt }
