package earningrepo

import (
	"context"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormEarningRepository implements EarningRepository using GORM.
type GormEarningRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEarningRepository creates a new GORM earning repository.
func NewGormEarningRepository(db *gorm.DB, tracker aggregateTracker) *GormEarningRepository {
	return &GormEarningRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new earning record to the database.
func (r *GormEarningRepository) Add(ctx context.Context, aggregate *earning.Earning) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ExistsForOrder reports whether an earning of the given type was already
// accrued for the order.
func (r *GormEarningRepository) ExistsForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	typ earning.Type,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}
	if err := typ.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&EarningDTO{}).
		Where("order_id = ? AND type = ?", orderID.Bytes(), int(typ)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
