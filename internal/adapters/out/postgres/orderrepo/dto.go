// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and tracking id.
type OrderDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	TrackingID     int64         `gorm:"type:bigint;index"`
	CurrentStep    int           `gorm:"type:int;not null"`
	Status         int           `gorm:"type:int;not null;index"`
	TotalIncentive int64         `gorm:"type:bigint;not null"`
	Legs           []OrderLegDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLegDTO represents one itinerary leg row. Legs are ordered by their
// index within the parent order; a zero completed_at means not yet reported.
type OrderLegDTO struct {
	OrderID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LegIndex    int        `gorm:"type:int;primaryKey;autoIncrement:false"`
	Party       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Target      int        `gorm:"type:int;not null"`
	Incentive   int64      `gorm:"type:bigint;not null"`
	Result      int        `gorm:"type:int;not null"`
	CompletedAt *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for itinerary leg rows.
func (OrderLegDTO) TableName() string {
	return "order_legs"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the itinerary legs in travel order.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	legs := aggregate.Legs()
	legDTOs := make([]OrderLegDTO, 0, len(legs))

	for i, leg := range legs {
		var completedAt *time.Time
		if at := leg.CompletedAt(); !at.IsZero() {
			completedAt = &at
		}

		legDTOs = append(legDTOs, OrderLegDTO{
			OrderID:     orderID,
			LegIndex:    i,
			Party:       leg.Party().Bytes(),
			Target:      int(leg.Target()),
			Incentive:   leg.Incentive(),
			Result:      int(leg.Result()),
			CompletedAt: completedAt,
		})
	}

	return OrderDTO{
		ID:             orderID,
		TrackingID:     aggregate.TrackingID(),
		CurrentStep:    aggregate.CurrentStep(),
		Status:         int(aggregate.Status()),
		TotalIncentive: aggregate.TotalIncentive(),
		Legs:           legDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its itinerary using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	legs := make([]order.Leg, len(dto.Legs))
	for _, legDTO := range dto.Legs {
		leg, legErr := legToDomain(legDTO)
		if legErr != nil {
			return nil, legErr
		}
		if legDTO.LegIndex < 0 || legDTO.LegIndex >= len(legs) {
			return nil, order.ErrItineraryTooShort
		}
		legs[legDTO.LegIndex] = leg
	}

	return order.RestoreOrder(
		id, dto.TrackingID, legs,
		dto.CurrentStep, order.Status(dto.Status), dto.TotalIncentive,
	)
}

// legToDomain converts a leg row to its domain value.
func legToDomain(dto OrderLegDTO) (order.Leg, error) {
	party, err := kernel.UUIDFromBytes(dto.Party[:])
	if err != nil {
		return order.Leg{}, err
	}

	var completedAt time.Time
	if dto.CompletedAt != nil {
		completedAt = *dto.CompletedAt
	}

	return order.RestoreLeg(
		party, order.StatusCode(dto.Target), dto.Incentive,
		order.StatusCode(dto.Result), completedAt,
	)
}
