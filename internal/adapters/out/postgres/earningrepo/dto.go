// Package earningrepo provides data transfer objects and mapping functions
// for the earnings ledger.
package earningrepo

import (
	"time"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EarningDTO represents the database structure for persisting earning
// records. The unique index on (order_id, type) is the storage half of the
// at-most-one-earning-per-type-per-order invariant.
type EarningDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_earnings_order_type"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        int       `gorm:"not null;uniqueIndex:idx_earnings_order_type"`
	Amount      float64   `gorm:"not null"`
	Status      int
	CreatedAt   time.Time
}

// TableName specifies the database table name for earning entities.
func (EarningDTO) TableName() string {
	return "earnings"
}

func fromDomain(aggregate *earning.Earning) EarningDTO {
	return EarningDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		RecipientID: aggregate.RecipientID().Bytes(),
		Type:        int(aggregate.Type()),
		Amount:      aggregate.Amount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func toDomain(dto EarningDTO) (*earning.Earning, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	return earning.RestoreEarning(
		id,
		orderID,
		recipientID,
		earning.Type(dto.Type),
		dto.Amount,
		earning.Status(dto.Status),
		dto.CreatedAt,
	)
}
