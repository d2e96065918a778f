// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. It implements the repository pattern for the
// courier aggregate, handling the conversion between domain entities and
// database representations.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Location columns are nullable: a courier has no position until
// the first GPS ping.
type CourierDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Phone string    `gorm:"type:varchar(32)"`

	Status int `gorm:"index"`

	LocationLat *float64
	LocationLon *float64

	Rating              float64
	CompletedDeliveries int
	Balance             float64
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	var lat, lon *float64
	if loc := aggregate.Location(); loc != nil {
		latVal, lonVal := loc.Lat(), loc.Lon()
		lat, lon = &latVal, &lonVal
	}

	return CourierDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Phone:               aggregate.Phone(),
		Status:              int(aggregate.Status()),
		LocationLat:         lat,
		LocationLon:         lon,
		Rating:              aggregate.Rating(),
		CompletedDeliveries: aggregate.CompletedDeliveries(),
		Balance:             aggregate.Balance(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using
// RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Phone,
		courier.Status(dto.Status),
		location,
		dto.Rating,
		dto.CompletedDeliveries,
		dto.Balance,
	)
}
