package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the operational availability of a courier.
// Only Online couriers are considered by the dispatch coordinator.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// Online means the courier accepts new orders.
	Online

	// Offline means the courier is unavailable. Couriers are never
	// deleted, only set Offline.
	Offline
)

// Validate checks that the value is one of the defined statuses.
func (s Status) Validate() error {
	switch s {
	case Online, Offline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid courier status", s))
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	default:
		return "Unknown"
	}
}
