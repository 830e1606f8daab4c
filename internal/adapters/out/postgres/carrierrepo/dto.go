// Package carrierrepo provides data transfer objects and mapping functions for carrier persistence.
// This package implements the repository pattern for the carrier domain aggregate, handling
// the conversion between domain entities and database representations.
package carrierrepo

import (
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierDTO represents the database structure for persisting carrier aggregates.
// Maps carrier domain entities to relational database tables with proper foreign key relationships.
type CarrierDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name            string            `gorm:"type:varchar(255);not null"`
	PayoutRecipient uuid.UUID         `gorm:"type:uuid;not null;index"`
	Tasks           []CarrierTaskDTO  `gorm:"foreignKey:CarrierID;constraint:OnDelete:CASCADE"`
	Orders          []CarrierOrderDTO `gorm:"foreignKey:CarrierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for carrier entities.
// Overrides GORM's default naming convention to use "carriers".
func (CarrierDTO) TableName() string {
	return "carriers"
}

// CarrierTaskDTO represents one launched (accepted) itinerary leg.
type CarrierTaskDTO struct {
	CarrierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LegIndex  int       `gorm:"type:int;primaryKey;autoIncrement:false"`
}

// TableName specifies the database table name for launched task rows.
func (CarrierTaskDTO) TableName() string {
	return "carrier_tasks"
}

// CarrierOrderDTO represents one order currently held by the carrier.
// Position preserves acquisition order across restores.
type CarrierOrderDTO struct {
	CarrierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for held order rows.
func (CarrierOrderDTO) TableName() string {
	return "carrier_orders"
}

// fromDomain converts a carrier domain aggregate to its database representation.
// Maps all aggregate state including launched tasks and held orders.
func fromDomain(aggregate *carrier.Carrier) CarrierDTO {
	carrierID := aggregate.ID().Bytes()

	tasks := aggregate.LaunchedTasks()
	taskDTOs := make([]CarrierTaskDTO, 0, len(tasks))
	for _, task := range tasks {
		taskDTOs = append(taskDTOs, CarrierTaskDTO{
			CarrierID: carrierID,
			OrderID:   task.OrderID.Bytes(),
			LegIndex:  task.LegIndex,
		})
	}

	orders := aggregate.Orders()
	orderDTOs := make([]CarrierOrderDTO, 0, len(orders))
	for i, orderID := range orders {
		orderDTOs = append(orderDTOs, CarrierOrderDTO{
			CarrierID: carrierID,
			OrderID:   orderID.Bytes(),
			Position:  i,
		})
	}

	return CarrierDTO{
		ID:              carrierID,
		Name:            aggregate.Name(),
		PayoutRecipient: aggregate.PayoutRecipient().Bytes(),
		Tasks:           taskDTOs,
		Orders:          orderDTOs,
	}
}

// toDomain converts a database DTO to a carrier domain aggregate.
// Reconstructs the complete aggregate using RestoreCarrier.
func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	payoutRecipient, err := kernel.UUIDFromBytes(dto.PayoutRecipient[:])
	if err != nil {
		return nil, err
	}

	tasks := make([]carrier.TaskKey, 0, len(dto.Tasks))
	for _, taskDTO := range dto.Tasks {
		orderID, taskErr := kernel.UUIDFromBytes(taskDTO.OrderID[:])
		if taskErr != nil {
			return nil, taskErr
		}
		tasks = append(tasks, carrier.TaskKey{OrderID: orderID, LegIndex: taskDTO.LegIndex})
	}

	orders := make([]kernel.UUID, len(dto.Orders))
	for _, orderDTO := range dto.Orders {
		orderID, orderErr := kernel.UUIDFromBytes(orderDTO.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		if orderDTO.Position < 0 || orderDTO.Position >= len(orders) {
			return nil, carrier.ErrCarrierIsNotConstructed
		}
		orders[orderDTO.Position] = orderID
	}

	return carrier.RestoreCarrier(id, dto.Name, payoutRecipient, tasks, orders)
}
