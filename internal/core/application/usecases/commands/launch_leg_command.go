package commands

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var (
	ErrLaunchLegCommandIsNotConstructed = errors.New(
		"LaunchLegCommand must be created via NewLaunchLegCommand constructor",
	)
	ErrLegIndexIsInvalid = errors.New("leg index must be greater than 0")
)

// LaunchLegCommand represents a carrier's acceptance of one itinerary leg.
// A leg must be launched by its carrier before progress on it can be reported.
type LaunchLegCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	orderID   kernel.UUID
	legIndex  int

	guard guard.ConstructorGuard
}

// NewLaunchLegCommand creates a command for a carrier to accept an itinerary leg.
func NewLaunchLegCommand(carrierID kernel.UUID, orderID kernel.UUID, legIndex int) (LaunchLegCommand, error) {
	cmd := LaunchLegCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setOrderID(orderID),
		cmd.setLegIndex(legIndex),
	); err != nil {
		return LaunchLegCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LaunchLegCommand) Validate() error {
	return c.guard.Validate(ErrLaunchLegCommandIsNotConstructed)
}

// CarrierID returns the accepting carrier.
func (c LaunchLegCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// OrderID returns the order whose leg is being accepted.
func (c LaunchLegCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LegIndex returns the itinerary position being accepted.
func (c LaunchLegCommand) LegIndex() int {
	return c.legIndex
}

func (c *LaunchLegCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *LaunchLegCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *LaunchLegCommand) setLegIndex(legIndex int) error {
	if legIndex < 1 {
		return ErrLegIndexIsInvalid
	}

	c.legIndex = legIndex
	return nil
}
