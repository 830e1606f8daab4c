package carrierrepo

import (
	"context"
	"errors"

	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCarrierRepository implements CarrierRepository using GORM.
type GormCarrierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCarrierRepository creates a new GORM carrier repository.
func NewGormCarrierRepository(db *gorm.DB, tracker aggregateTracker) *GormCarrierRepository {
	return &GormCarrierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new carrier to the database.
func (r *GormCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
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

// Update saves an existing carrier to the database. Held-order rows no longer
// present in the aggregate are deleted before the remaining state is saved.
func (r *GormCarrierRepository) Update(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// A released order removes its row; association saving alone never
	// deletes, so clear the held-order rows first.
	if err := r.db.WithContext(ctx).
		Where("carrier_id = ?", dto.ID).
		Delete(&CarrierOrderDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a carrier by ID.
func (r *GormCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierDTO
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByIDs retrieves the carriers for every given identifier.
// Returns ObjectNotFoundError when any identifier has no carrier row.
func (r *GormCarrierRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*carrier.Carrier, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []CarrierDTO
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	if len(dtos) != len(ids) {
		found := make(map[kernel.UUID]bool, len(dtos))
		for _, dto := range dtos {
			id, err := kernel.UUIDFromBytes(dto.ID[:])
			if err != nil {
				return nil, err
			}
			found[id] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, errs.NewObjectNotFoundError("carrier", id.String())
			}
		}
	}

	carriers := make([]*carrier.Carrier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, c)
	}

	return carriers, nil
}
