package commands

import (
	"errors"
	"time"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/pkg/guard"
)

var ErrReportLegCommandIsNotConstructed = errors.New(
	"ReportLegCommand must be created via NewReportLegCommand constructor",
)

// ReportLegCommand represents a carrier's progress report for its current
// itinerary leg: either the leg's target status code or a failure code.
type ReportLegCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	orderID   kernel.UUID
	legIndex  int
	code      order.StatusCode
	at        time.Time

	guard guard.ConstructorGuard
}

// NewReportLegCommand creates a command to report progress on an itinerary leg.
// The code is checked against the leg's target inside the tracking protocol;
// here only failure codes and known codes are admitted. at is the
// caller-supplied completion time; a zero value lets the handler stamp the
// time of receipt instead.
func NewReportLegCommand(
	carrierID kernel.UUID, orderID kernel.UUID, legIndex int, code order.StatusCode, at time.Time,
) (ReportLegCommand, error) {
	cmd := ReportLegCommand{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setOrderID(orderID),
		cmd.setLegIndex(legIndex),
		cmd.setCode(code),
	); err != nil {
		return ReportLegCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLegCommand) Validate() error {
	return c.guard.Validate(ErrReportLegCommandIsNotConstructed)
}

// CarrierID returns the reporting carrier.
func (c ReportLegCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// OrderID returns the order being reported on.
func (c ReportLegCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LegIndex returns the itinerary position being reported.
func (c ReportLegCommand) LegIndex() int {
	return c.legIndex
}

// Code returns the reported status code.
func (c ReportLegCommand) Code() order.StatusCode {
	return c.code
}

// At returns the caller-supplied completion time, zero when none was given.
func (c ReportLegCommand) At() time.Time {
	return c.at
}

func (c *ReportLegCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *ReportLegCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportLegCommand) setLegIndex(legIndex int) error {
	if legIndex < 1 {
		return ErrLegIndexIsInvalid
	}

	c.legIndex = legIndex
	return nil
}

func (c *ReportLegCommand) setCode(code order.StatusCode) error {
	if code.IsFailure() {
		c.code = code
		return nil
	}
	if err := code.Validate(); err != nil {
		return err
	}

	c.code = code
	return nil
}
