package paymentlogrepo

import (
	"context"

	"dispatch/internal/core/domain/model/paymentlog"

	"gorm.io/gorm"
)

// GormPaymentLogRepository implements PaymentLogRepository using GORM.
type GormPaymentLogRepository struct {
	db *gorm.DB
}

// NewGormPaymentLogRepository creates a new GORM payment log repository.
func NewGormPaymentLogRepository(db *gorm.DB) *GormPaymentLogRepository {
	return &GormPaymentLogRepository{db: db}
}

// Add saves a payment callback record to the database.
func (r *GormPaymentLogRepository) Add(ctx context.Context, entry *paymentlog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
