package order

import (
	"errors"
	"fmt"
	"time"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/errs"
)

// ErrIncentiveIsNegative is returned when creating a leg with a negative incentive.
var ErrIncentiveIsNegative = errors.New("incentive must not be negative")

// Leg is one segment of an order's itinerary, owned by exactly one party.
// Index 0 of an itinerary is the shipper's own leg; every later leg belongs to
// a carrier. A leg is immutable after order creation except for its completion
// record, which the Order stamps when the leg is reported.
type Leg struct {
	// party is the shipper (leg 0) or carrier assigned to this leg
	party kernel.UUID
	// target is the status code this leg must report to advance the order
	target StatusCode
	// incentive is the amount accrued to the party's recipient on order completion
	incentive int64
	// result is the code actually reported: zero until reported, then either the
	// target (success) or CodeFailed
	result StatusCode
	// completedAt is the caller-supplied completion time, zero until completed
	completedAt time.Time
}

// NewLeg creates an itinerary leg. The party must be a constructed identity,
// the target a valid status code and the incentive non-negative.
func NewLeg(party kernel.UUID, target StatusCode, incentive int64) (Leg, error) {
	if err := party.Validate(); err != nil {
		return Leg{}, err
	}
	if err := target.Validate(); err != nil {
		return Leg{}, err
	}
	if incentive < 0 {
		return Leg{}, errs.NewValueIsInvalidErrorWithCause("incentive is invalid",
			fmt.Errorf("%d: %w", incentive, ErrIncentiveIsNegative))
	}

	return Leg{
		party:     party,
		target:    target,
		incentive: incentive,
	}, nil
}

// RestoreLeg reconstructs a leg from persistence, including its completion record.
func RestoreLeg(
	party kernel.UUID, target StatusCode, incentive int64,
	result StatusCode, completedAt time.Time,
) (Leg, error) {
	leg, err := NewLeg(party, target, incentive)
	if err != nil {
		return Leg{}, err
	}

	leg.result = result
	leg.completedAt = completedAt
	return leg, nil
}

// Party returns the shipper or carrier assigned to this leg.
func (l Leg) Party() kernel.UUID {
	return l.party
}

// Target returns the status code this leg must report.
func (l Leg) Target() StatusCode {
	return l.target
}

// Incentive returns the amount accrued on successful order completion.
func (l Leg) Incentive() int64 {
	return l.incentive
}

// Result returns the reported code, or CodeUnknown if the leg was never reported.
func (l Leg) Result() StatusCode {
	return l.result
}

// CompletedAt returns the caller-supplied completion time, or the zero time if
// the leg has not completed.
func (l Leg) CompletedAt() time.Time {
	return l.completedAt
}

// IsCompleted reports whether the leg completed successfully.
func (l Leg) IsCompleted() bool {
	return l.result != CodeUnknown && !l.result.IsFailure()
}
