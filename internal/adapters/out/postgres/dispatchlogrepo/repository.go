package dispatchlogrepo

import (
	"context"

	"dispatch/internal/core/domain/model/dispatchlog"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDispatchLogRepository implements DispatchLogRepository using GORM.
// Attempt rows are not tracked as aggregates: they are write-once audit
// records with no post-commit processing.
type GormDispatchLogRepository struct {
	db *gorm.DB
}

// NewGormDispatchLogRepository creates a new GORM dispatch log repository.
func NewGormDispatchLogRepository(db *gorm.DB) *GormDispatchLogRepository {
	return &GormDispatchLogRepository{db: db}
}

// Add saves a dispatch attempt record to the database.
func (r *GormDispatchLogRepository) Add(ctx context.Context, attempt *dispatchlog.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// CountForOrder returns how many attempt records exist for the order.
func (r *GormDispatchLogRepository) CountForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&AttemptDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	return count, err
}
