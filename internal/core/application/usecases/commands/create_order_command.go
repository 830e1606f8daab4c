package commands

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItineraryIsRequired = errors.New("itinerary must name the shipper leg and at least one carrier leg")
)

// LegSpec describes one itinerary leg as requested by the shipper: the party
// responsible for it, the status code that reports it done, and the incentive
// attached to it.
type LegSpec struct {
	Party     kernel.UUID
	Target    order.StatusCode
	Incentive int64
}

// CreateOrderCommand represents a shipper's request to create a new freight
// order with its full itinerary. The first leg belongs to the shipper; the
// remaining legs name the carrier chain in travel order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, shipperID, legs)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	shipper kernel.UUID
	legs    []LegSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new freight order.
// Validates that the order and shipper ids are valid and the itinerary holds
// at least a shipper leg and one carrier leg.
func NewCreateOrderCommand(orderID kernel.UUID, shipper kernel.UUID, legs []LegSpec) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setShipper(shipper),
		orderCommand.setLegs(legs),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Shipper returns the party creating the order.
func (c CreateOrderCommand) Shipper() kernel.UUID {
	return c.shipper
}

// Legs returns the requested itinerary in travel order.
func (c CreateOrderCommand) Legs() []LegSpec {
	return c.legs
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShipper(shipper kernel.UUID) error {
	if err := shipper.Validate(); err != nil {
		return err
	}

	c.shipper = shipper
	return nil
}

func (c *CreateOrderCommand) setLegs(legs []LegSpec) error {
	if len(legs) < 2 {
		return ErrItineraryIsRequired
	}

	c.legs = append([]LegSpec(nil), legs...)
	return nil
}
