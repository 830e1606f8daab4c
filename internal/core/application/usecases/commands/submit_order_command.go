package commands

import (
	"errors"
	"time"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a shipper's request to hand a pending order
// into the tracking protocol. Only the order's origin party may submit.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	origin  kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a pending order. at is the
// caller-supplied submission time; a zero value lets the handler stamp the
// time of receipt instead.
func NewSubmitOrderCommand(orderID kernel.UUID, origin kernel.UUID, at time.Time) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrigin(origin),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being submitted.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Origin returns the submitting party.
func (c SubmitOrderCommand) Origin() kernel.UUID {
	return c.origin
}

// At returns the caller-supplied submission time, zero when none was given.
func (c SubmitOrderCommand) At() time.Time {
	return c.at
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setOrigin(origin kernel.UUID) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}
