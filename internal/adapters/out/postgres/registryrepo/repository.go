package registryrepo

import (
	"context"
	"errors"

	"freightledger/internal/core/domain/model/registry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRegistryRepository implements RegistryRepository using GORM.
// The registry is a singleton; Get materializes an empty one on first use.
type GormRegistryRepository struct {
	db *gorm.DB
}

// NewGormRegistryRepository creates a new GORM registry repository.
func NewGormRegistryRepository(db *gorm.DB) *GormRegistryRepository {
	return &GormRegistryRepository{db: db}
}

// Get loads the registry aggregate with all its child rows. The singleton row
// is read under a FOR UPDATE lock, so within a transaction every concurrent
// mutating command serializes on the registry: the second reader blocks here
// until the first transaction commits its Save.
func (r *GormRegistryRepository) Get(ctx context.Context) (*registry.Registry, error) {
	var s snapshot

	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s.row, "id = ?", registrySingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First use. Materialize the empty singleton row so there is a row to
		// lock, then take the lock; concurrent first users race on the insert
		// and serialize on the re-read.
		empty := fromDomain(registry.NewRegistry())
		if err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&empty.row).Error; err != nil {
			return nil, err
		}
		err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s.row, "id = ?", registrySingletonID).Error
	}
	if err != nil {
		return nil, err
	}

	if err = db.Order("position").Find(&s.carriers).Error; err != nil {
		return nil, err
	}
	if err = db.Find(&s.ratings).Error; err != nil {
		return nil, err
	}
	if err = db.Order("position").Find(&s.recipients).Error; err != nil {
		return nil, err
	}
	if err = db.Find(&s.balances).Error; err != nil {
		return nil, err
	}
	if err = db.Find(&s.admitted).Error; err != nil {
		return nil, err
	}

	return toDomain(s)
}

// Save rewrites the registry's relational image. Child rows are replaced
// wholesale; the FOR UPDATE lock taken in Get keeps concurrent rewrites
// serialized, and the unique tracking-id index rejects any write that would
// slip past it.
func (r *GormRegistryRepository) Save(ctx context.Context, aggregate *registry.Registry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Save(&s.row).Error; err != nil {
		return err
	}

	for _, clear := range []any{
		&RegistryCarrierDTO{}, &RegistryRatingDTO{},
		&RegistryRecipientDTO{}, &RegistryBalanceDTO{}, &RegistryAdmittedDTO{},
	} {
		if err := db.Where("1 = 1").Delete(clear).Error; err != nil {
			return err
		}
	}

	if len(s.carriers) > 0 {
		if err := db.Create(&s.carriers).Error; err != nil {
			return err
		}
	}
	if len(s.ratings) > 0 {
		if err := db.Create(&s.ratings).Error; err != nil {
			return err
		}
	}
	if len(s.recipients) > 0 {
		if err := db.Create(&s.recipients).Error; err != nil {
			return err
		}
	}
	if len(s.balances) > 0 {
		if err := db.Create(&s.balances).Error; err != nil {
			return err
		}
	}
	if len(s.admitted) > 0 {
		if err := db.Create(&s.admitted).Error; err != nil {
			return err
		}
	}

	return nil
}
