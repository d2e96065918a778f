package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler reads the tracking view with one LEFT JOIN so an
// unassigned order still resolves. Uses direct SQL for optimal read
// performance in the CQRS pattern.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for order tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking query. Returns an ObjectNotFoundError when
// the order does not exist. Courier name and position are included only
// while the order status is within the active delivery window.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.payment_status,
			o.destination_lat,
			o.destination_lon,
			o.created_at,
			o.finished_at,
			c.name,
			c.phone,
			c.location_lat,
			c.location_lon
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                 uuid.UUID
		status             int
		paymentStatus      int
		destLat, destLon   *float64
		createdAt          time.Time
		finishedAt         *time.Time
		courierName        sql.NullString
		courierPhone       sql.NullString
		courLat, courLon   *float64
	)

	err := row.Scan(
		&id, &status, &paymentStatus,
		&destLat, &destLon, &createdAt, &finishedAt,
		&courierName, &courierPhone, &courLat, &courLon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError(
			"order", query.OrderID().String())
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	response := TrackOrderQueryResponse{
		OrderID:       orderID,
		Status:        order.Status(status).String(),
		PaymentStatus: order.PaymentStatus(paymentStatus).String(),
		CreatedAt:     createdAt,
		FinishedAt:    finishedAt,
	}

	if destination, ok := geoPointFrom(destLat, destLon); ok {
		response.Destination = &destination
	}

	if order.Status(status).IsActiveDelivery() && courierName.Valid {
		response.CourierName = courierName.String
		response.CourierPhone = courierPhone.String
		if position, ok := geoPointFrom(courLat, courLon); ok {
			response.CourierLocation = &position
		}
	}

	return response, nil
}

// geoPointFrom rebuilds a GeoPoint from a nullable coordinate pair.
func geoPointFrom(lat *float64, lon *float64) (kernel.GeoPoint, bool) {
	if lat == nil || lon == nil {
		return kernel.GeoPoint{}, false
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return kernel.GeoPoint{}, false
	}

	return point, true
}
