package commands

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var ErrUnregisterCarrierCommandIsNotConstructed = errors.New(
	"UnregisterCarrierCommand must be created via NewUnregisterCarrierCommand constructor",
)

// UnregisterCarrierCommand represents a request to remove a carrier from the
// membership set. The carrier aggregate and its ratings are kept; orders the
// carrier already holds keep progressing.
type UnregisterCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnregisterCarrierCommand creates a command to remove a carrier from membership.
func NewUnregisterCarrierCommand(carrierID kernel.UUID) (UnregisterCarrierCommand, error) {
	cmd := UnregisterCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCarrierID(carrierID); err != nil {
		return UnregisterCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnregisterCarrierCommand) Validate() error {
	return c.guard.Validate(ErrUnregisterCarrierCommandIsNotConstructed)
}

// CarrierID returns the carrier being removed from membership.
func (c UnregisterCarrierCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c *UnregisterCarrierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}
