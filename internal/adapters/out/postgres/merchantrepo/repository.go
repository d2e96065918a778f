package merchantrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMerchantRepository implements MerchantRepository using GORM.
type GormMerchantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMerchantRepository creates a new GORM merchant repository.
func NewGormMerchantRepository(db *gorm.DB, tracker aggregateTracker) *GormMerchantRepository {
	return &GormMerchantRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new merchant to the database.
func (r *GormMerchantRepository) Add(ctx context.Context, aggregate *merchant.Merchant) error {
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

// Update saves an existing merchant to the database.
func (r *GormMerchantRepository) Update(ctx context.Context, aggregate *merchant.Merchant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MerchantDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a merchant by ID.
func (r *GormMerchantRepository) Get(ctx context.Context, id kernel.UUID) (*merchant.Merchant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MerchantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("merchant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
