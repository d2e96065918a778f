// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregate layer and read optimized models straight
// from the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the customer-facing view of one order: its
// lifecycle position and, while a courier is actively delivering, the
// courier's name and last reported position.
//
// Example:
//
//	query, err := NewTrackOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewTrackOrderQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to track order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", view.OrderID, view.Status)
type TrackOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query for the given order.
func NewTrackOrderQuery(orderID kernel.UUID) (TrackOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderID returns the order to track.
func (q TrackOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TrackOrderQueryResponse is the tracking read model. Courier fields are
// populated only while the order is in flight (Assigned through Delivered);
// outside that window the courier stays hidden from the customer.
type TrackOrderQueryResponse struct {
	OrderID         kernel.UUID
	Status          string
	PaymentStatus   string
	Destination     *kernel.GeoPoint
	CourierName     string
	CourierPhone    string
	CourierLocation *kernel.GeoPoint
	CreatedAt       time.Time
	FinishedAt      *time.Time
}
