// Package paymentlogrepo persists the payment callback audit trail. Unlike
// the aggregate repositories it always writes on the main connection: a
// callback row must survive even when the business transaction it describes
// rolls back.
package paymentlogrepo

import (
	"time"

	"dispatch/internal/core/domain/model/paymentlog"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for payment callback records.
// RawPayload keeps the full form body for dispute resolution.
type EntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider       string    `gorm:"type:varchar(32);index"`
	OrderRef       string    `gorm:"type:varchar(64);index"`
	RawPayload     string    `gorm:"type:text"`
	Action         string    `gorm:"type:varchar(16)"`
	SignatureValid bool
	ResponseCode   int
	Note           string
	CreatedAt      time.Time
}

// TableName specifies the database table name for payment callback records.
func (EntryDTO) TableName() string {
	return "payment_logs"
}

func fromDomain(entry *paymentlog.Entry) EntryDTO {
	return EntryDTO{
		ID:             entry.ID().Bytes(),
		Provider:       entry.Provider(),
		OrderRef:       entry.OrderRef(),
		RawPayload:     entry.RawPayload(),
		Action:         entry.Action(),
		SignatureValid: entry.SignatureValid(),
		ResponseCode:   entry.ResponseCode(),
		Note:           entry.Note(),
		CreatedAt:      entry.CreatedAt(),
	}
}
