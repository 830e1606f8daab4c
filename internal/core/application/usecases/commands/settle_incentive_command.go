package commands

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var ErrSettleIncentiveCommandIsNotConstructed = errors.New(
	"SettleIncentiveCommand must be created via NewSettleIncentiveCommand constructor",
)

// SettleIncentiveCommand represents one settlement step for a single
// recipient. Settlement is two-phase: the first call stages the accrued
// amount, the next call pays the staged amount out.
type SettleIncentiveCommand struct { //nolint:recvcheck //using for validation
	recipient kernel.UUID

	guard guard.ConstructorGuard
}

// NewSettleIncentiveCommand creates a command to run one settlement step.
func NewSettleIncentiveCommand(recipient kernel.UUID) (SettleIncentiveCommand, error) {
	cmd := SettleIncentiveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRecipient(recipient); err != nil {
		return SettleIncentiveCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleIncentiveCommand) Validate() error {
	return c.guard.Validate(ErrSettleIncentiveCommandIsNotConstructed)
}

// Recipient returns the party being settled.
func (c SettleIncentiveCommand) Recipient() kernel.UUID {
	return c.recipient
}

func (c *SettleIncentiveCommand) setRecipient(recipient kernel.UUID) error {
	if err := recipient.Validate(); err != nil {
		return err
	}

	c.recipient = recipient
	return nil
}
