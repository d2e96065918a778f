package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves the courier fleet from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for fleet queries.
// Requires a GORM database connection for query execution.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle executes the query. Returns all couriers sorted by name.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			status,
			location_lat,
			location_lon,
			rating,
			completed_deliveries,
			balance
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uuid.UUID
			status   int
			lat, lon *float64
			response GetAllCouriersQueryResponse
		)

		if err = rows.Scan(
			&id, &response.Name, &response.Phone, &status,
			&lat, &lon, &response.Rating,
			&response.CompletedDeliveries, &response.Balance,
		); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = courierID
		response.Online = courier.Status(status) == courier.Online

		if location, ok := geoPointFrom(lat, lon); ok {
			response.Location = &location
		}

		couriers = append(couriers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
