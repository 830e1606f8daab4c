package order

import (
	"fmt"

	"freightledger/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct tracking workflow.
//
// State transitions:
//
//	Pending ──> InTransit ──┬──> Completed
//	                │       │
//	                └───────┴──> Failed
//	          (advance stays InTransit)
//
// Completed and Failed are mutually exclusive terminal states: Completed is
// reached only by advancing through every leg, Failed only by an explicit
// failure report at some earlier step.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the itinerary is set but the order
	// has not been submitted for admission.
	StatusPending

	// StatusInTransit indicates the order was admitted and legs are being
	// completed one at a time.
	StatusInTransit

	// StatusCompleted indicates every leg was completed. Terminal.
	StatusCompleted

	// StatusFailed indicates an explicit failure report ended the order before
	// the final leg. Terminal.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusInTransit: "InTransit",
		StatusCompleted: "Completed",
		StatusFailed:    "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusInTransit: "InTransit",
		StatusCompleted: "Completed",
		StatusFailed:    "Failed",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further leg mutations are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Submit transitions the status to InTransit. This is the one-time admission
// transition; only Pending orders can be submitted.
func (s Status) Submit() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to submit", s.String()),
		)
	}

	return StatusInTransit, nil
}

// Complete transitions the status to Completed.
// Only InTransit orders can complete.
func (s Status) Complete() (Status, error) {
	if s != StatusInTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return StatusCompleted, nil
}

// Fail transitions the status to Failed.
// Only InTransit orders can fail; terminal states never transition again.
func (s Status) Fail() (Status, error) {
	if s != StatusInTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return StatusFailed, nil
}
