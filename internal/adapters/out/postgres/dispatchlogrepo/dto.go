// Package dispatchlogrepo persists the dispatch attempt audit trail.
// Attempt rows are append-only and never mapped back to aggregates for
// mutation, so the package carries no toDomain path.
package dispatchlogrepo

import (
	"time"

	"dispatch/internal/core/domain/model/dispatchlog"

	"github.com/google/uuid"
)

// AttemptDTO represents the database structure for dispatch attempt records.
type AttemptDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index"`
	Score     float64
	Outcome   string `gorm:"type:varchar(16)"`
	CreatedAt time.Time
}

// TableName specifies the database table name for dispatch attempt records.
func (AttemptDTO) TableName() string {
	return "dispatch_attempts"
}

func fromDomain(attempt *dispatchlog.Attempt) AttemptDTO {
	return AttemptDTO{
		ID:        attempt.ID().Bytes(),
		OrderID:   attempt.OrderID().Bytes(),
		CourierID: attempt.CourierID().Bytes(),
		Score:     attempt.Score(),
		Outcome:   attempt.Outcome().String(),
		CreatedAt: attempt.CreatedAt(),
	}
}
