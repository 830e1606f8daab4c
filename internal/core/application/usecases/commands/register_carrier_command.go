package commands

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var (
	ErrRegisterCarrierCommandIsNotConstructed = errors.New(
		"RegisterCarrierCommand must be created via NewRegisterCarrierCommand constructor",
	)
	ErrCarrierNameIsRequired = errors.New("carrier name is required")
)

// RegisterCarrierCommand represents a request to enroll a carrier into the
// ledger: it creates the carrier aggregate and links it into the registry's
// membership set in one transaction.
type RegisterCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID       kernel.UUID
	name            string
	payoutRecipient kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterCarrierCommand creates a command to enroll a carrier.
// The payout recipient is the party whose balance accrues the carrier's
// incentives; it may be the carrier itself or a treasury party.
func NewRegisterCarrierCommand(
	carrierID kernel.UUID, name string, payoutRecipient kernel.UUID,
) (RegisterCarrierCommand, error) {
	cmd := RegisterCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setName(name),
		cmd.setPayoutRecipient(payoutRecipient),
	); err != nil {
		return RegisterCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCarrierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCarrierCommandIsNotConstructed)
}

// CarrierID returns the identifier of the carrier being enrolled.
func (c RegisterCarrierCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// Name returns the carrier's display name.
func (c RegisterCarrierCommand) Name() string {
	return c.name
}

// PayoutRecipient returns the party that accrues the carrier's incentives.
func (c RegisterCarrierCommand) PayoutRecipient() kernel.UUID {
	return c.payoutRecipient
}

func (c *RegisterCarrierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *RegisterCarrierCommand) setName(name string) error {
	if name == "" {
		return ErrCarrierNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterCarrierCommand) setPayoutRecipient(payoutRecipient kernel.UUID) error {
	if err := payoutRecipient.Validate(); err != nil {
		return err
	}

	c.payoutRecipient = payoutRecipient
	return nil
}
