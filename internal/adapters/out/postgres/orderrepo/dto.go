// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed on status and courier assignment for the dispatch and tracking
// queries; destination coordinates are nullable because customers may submit
// orders without usable coordinates.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID  *uuid.UUID `gorm:"type:uuid;index"`
	MerchantID *uuid.UUID `gorm:"type:uuid;index"`

	DestinationLat *float64
	DestinationLon *float64

	TotalAmount float64
	DeliveryFee float64

	Status        int `gorm:"index"`
	PaymentStatus int

	PaymentProvider string
	PaymentID       string `gorm:"index"`

	CreatedAt  time.Time
	FinishedAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var merchantID *uuid.UUID
	if id := aggregate.Merchant(); id != nil {
		raw := id.Bytes()
		merchantID = &raw
	}

	var lat, lon *float64
	if dest := aggregate.Destination(); dest != nil {
		latVal, lonVal := dest.Lat(), dest.Lon()
		lat, lon = &latVal, &lonVal
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CourierID:       courierID,
		MerchantID:      merchantID,
		DestinationLat:  lat,
		DestinationLon:  lon,
		TotalAmount:     aggregate.TotalAmount(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Status:          int(aggregate.Status()),
		PaymentStatus:   int(aggregate.PaymentStatus()),
		PaymentProvider: aggregate.PaymentProvider(),
		PaymentID:       aggregate.PaymentID(),
		CreatedAt:       aggregate.CreatedAt(),
		FinishedAt:      aggregate.FinishedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var merchantID *kernel.UUID
	if dto.MerchantID != nil {
		mID, merchantErr := kernel.UUIDFromBytes((*dto.MerchantID)[:])
		if merchantErr != nil {
			return nil, merchantErr
		}
		merchantID = &mID
	}

	var destination *kernel.GeoPoint
	if dto.DestinationLat != nil && dto.DestinationLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DestinationLat, *dto.DestinationLon)
		if pointErr != nil {
			return nil, pointErr
		}
		destination = &point
	}

	return order.RestoreOrder(
		id,
		dto.TotalAmount,
		dto.DeliveryFee,
		destination,
		merchantID,
		courierID,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.PaymentProvider,
		dto.PaymentID,
		dto.CreatedAt,
		dto.FinishedAt,
	)
}
