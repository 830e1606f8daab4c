// Package registryrepo persists the singleton registry aggregate: carrier
// membership, performance ratings, incentive balances and the tracking-id
// counter. The whole aggregate is loaded and saved within the owning
// transaction.
package registryrepo

import (
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/registry"

	"github.com/google/uuid"
)

// registrySingletonID is the fixed primary key of the single registry row.
const registrySingletonID = 1

// RegistryDTO represents the registry's scalar state.
type RegistryDTO struct {
	ID             int   `gorm:"type:int;primaryKey;autoIncrement:false"`
	NextTrackingID int64 `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for the registry row.
func (RegistryDTO) TableName() string {
	return "registries"
}

// RegistryCarrierDTO represents one membership row. Position preserves
// registration order across restores.
type RegistryCarrierDTO struct {
	Party    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for membership rows.
func (RegistryCarrierDTO) TableName() string {
	return "registry_carriers"
}

// RegistryRatingDTO represents one carrier's performance counters.
type RegistryRatingDTO struct {
	Party          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignedTotal  int64     `gorm:"type:bigint;not null"`
	CompletedTotal int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for rating rows.
func (RegistryRatingDTO) TableName() string {
	return "registry_ratings"
}

// RegistryRecipientDTO represents one recipient with an open balance.
type RegistryRecipientDTO struct {
	Party    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for recipient rows.
func (RegistryRecipientDTO) TableName() string {
	return "registry_recipients"
}

// RegistryBalanceDTO represents one recipient's incentive bookkeeping.
type RegistryBalanceDTO struct {
	Recipient         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccruedTotal      int64     `gorm:"type:bigint;not null"`
	PendingSettlement int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for balance rows.
func (RegistryBalanceDTO) TableName() string {
	return "registry_balances"
}

// RegistryAdmittedDTO represents one admitted order and its tracking id.
// The unique index backs the sequential-assignment invariant at the
// database level.
type RegistryAdmittedDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID int64     `gorm:"type:bigint;not null;uniqueIndex"`
}

// TableName specifies the database table name for admitted-order rows.
func (RegistryAdmittedDTO) TableName() string {
	return "registry_admitted"
}

// snapshot is the registry's full relational image used for saving.
type snapshot struct {
	row        RegistryDTO
	carriers   []RegistryCarrierDTO
	ratings    []RegistryRatingDTO
	recipients []RegistryRecipientDTO
	balances   []RegistryBalanceDTO
	admitted   []RegistryAdmittedDTO
}

// fromDomain flattens the aggregate into its relational image.
func fromDomain(aggregate *registry.Registry) snapshot {
	s := snapshot{
		row: RegistryDTO{ID: registrySingletonID, NextTrackingID: aggregate.NextTrackingID()},
	}

	for i, party := range aggregate.Carriers() {
		s.carriers = append(s.carriers, RegistryCarrierDTO{Party: party.Bytes(), Position: i})
	}
	for party, rating := range aggregate.Ratings() {
		s.ratings = append(s.ratings, RegistryRatingDTO{
			Party:          party.Bytes(),
			AssignedTotal:  rating.AssignedTotal,
			CompletedTotal: rating.CompletedTotal,
		})
	}
	for i, party := range aggregate.Recipients() {
		s.recipients = append(s.recipients, RegistryRecipientDTO{Party: party.Bytes(), Position: i})
	}
	for recipient, balance := range aggregate.Balances() {
		s.balances = append(s.balances, RegistryBalanceDTO{
			Recipient:         recipient.Bytes(),
			AccruedTotal:      balance.AccruedTotal,
			PendingSettlement: balance.PendingSettlement,
		})
	}
	for orderID, trackingID := range aggregate.AdmittedOrders() {
		s.admitted = append(s.admitted, RegistryAdmittedDTO{
			OrderID:    orderID.Bytes(),
			TrackingID: trackingID,
		})
	}

	return s
}

// toDomain rebuilds the aggregate from its relational image via RestoreRegistry.
func toDomain(s snapshot) (*registry.Registry, error) {
	carriers := make([]kernel.UUID, len(s.carriers))
	for _, dto := range s.carriers {
		party, err := kernel.UUIDFromBytes(dto.Party[:])
		if err != nil {
			return nil, err
		}
		if dto.Position < 0 || dto.Position >= len(carriers) {
			return nil, registry.ErrRegistryIsNotConstructed
		}
		carriers[dto.Position] = party
	}

	recipients := make([]kernel.UUID, len(s.recipients))
	for _, dto := range s.recipients {
		party, err := kernel.UUIDFromBytes(dto.Party[:])
		if err != nil {
			return nil, err
		}
		if dto.Position < 0 || dto.Position >= len(recipients) {
			return nil, registry.ErrRegistryIsNotConstructed
		}
		recipients[dto.Position] = party
	}

	ratings := make(map[kernel.UUID]registry.Rating, len(s.ratings))
	for _, dto := range s.ratings {
		party, err := kernel.UUIDFromBytes(dto.Party[:])
		if err != nil {
			return nil, err
		}
		ratings[party] = registry.Rating{
			AssignedTotal:  dto.AssignedTotal,
			CompletedTotal: dto.CompletedTotal,
		}
	}

	balances := make(map[kernel.UUID]registry.Balance, len(s.balances))
	for _, dto := range s.balances {
		recipient, err := kernel.UUIDFromBytes(dto.Recipient[:])
		if err != nil {
			return nil, err
		}
		balances[recipient] = registry.Balance{
			AccruedTotal:      dto.AccruedTotal,
			PendingSettlement: dto.PendingSettlement,
		}
	}

	admitted := make(map[kernel.UUID]int64, len(s.admitted))
	for _, dto := range s.admitted {
		orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, err
		}
		admitted[orderID] = dto.TrackingID
	}

	return registry.RestoreRegistry(
		s.row.NextTrackingID,
		carriers, ratings,
		recipients, balances,
		admitted,
	)
}
