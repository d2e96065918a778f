package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition graph:
//
//	Created ──> Assigned ──> PickedUp ──> Delivering ──> Delivered ──┬──> Paid ──> Completed
//	                                                                 └──> Completed
//
// Cancelled is reachable from every non-terminal state.
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of a newly placed order,
	// waiting for courier assignment.
	Created

	// Assigned indicates a courier has been assigned to the order.
	Assigned

	// PickedUp indicates the courier has collected the order.
	PickedUp

	// Delivering indicates the order is on its way to the customer.
	Delivering

	// Delivered indicates the order reached the customer.
	Delivered

	// Paid indicates the payment for a delivered order has settled;
	// entering this state triggers earnings accrual.
	Paid

	// Completed is the terminal success state.
	Completed

	// Cancelled is the terminal abort state, reachable from any
	// non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Assigned:   "Assigned",
		PickedUp:   "PickedUp",
		Delivering: "Delivering",
		Delivered:  "Delivered",
		Paid:       "Paid",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// transitions is the adjacency table of the order state machine.
// Cancelled is appended for every non-terminal state.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Created:    {Assigned, Cancelled},
		Assigned:   {PickedUp, Cancelled},
		PickedUp:   {Delivering, Cancelled},
		Delivering: {Delivered, Cancelled},
		Delivered:  {Paid, Completed, Cancelled},
		Paid:       {Completed, Cancelled},
		Completed:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses a status name as received from the API.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActiveDelivery reports whether the order is in flight with a courier,
// the window during which courier contact details may be exposed to the
// tracking surface.
func (s Status) IsActiveDelivery() bool {
	switch s {
	case Assigned, PickedUp, Delivering, Delivered:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the transition graph permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
// Transitions not present in the adjacency table are refused.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("transition %s -> %s is not allowed", s, next))
	}

	return next, nil
}
