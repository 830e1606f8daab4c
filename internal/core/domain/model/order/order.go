package order

import (
	"errors"
	"fmt"
	"time"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/errs"
	"freightledger/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItineraryTooShort is returned when an itinerary has fewer than two legs.
	// Every order needs the shipper's origin leg plus at least one carrier leg.
	ErrItineraryTooShort = errors.New("itinerary must have at least two legs")

	// ErrPartyNotAuthorized is returned when the acting party is not the one
	// assigned to the step being mutated.
	ErrPartyNotAuthorized = errors.New("party is not authorized for this step")

	// ErrOrderAlreadyTerminal is returned when mutating a Completed or Failed order.
	ErrOrderAlreadyTerminal = errors.New("order is already terminal")

	// ErrCodeMismatch is returned when a reported code is neither the current
	// leg's target nor the reserved failure code.
	ErrCodeMismatch = errors.New("reported code does not match the leg target")

	// ErrTrackingIDAlreadyAssigned is returned on a second tracking id assignment.
	ErrTrackingIDAlreadyAssigned = errors.New("tracking id is already assigned")
)

// Order is the aggregate root for one shipment. It holds an ordered itinerary of
// tracking legs and advances through them one at a time as the assigned parties
// report completion.
//
// Order follows these invariants:
//   - The itinerary is fixed at creation: leg 0 belongs to the shipper, every
//     later leg to a carrier, and there are at least two legs
//   - currentStep is monotonically non-decreasing over the order's lifetime
//   - Once terminal (Completed or Failed), no further leg mutation is permitted
//   - Completed and Failed are mutually exclusive: Completed means currentStep
//     reached the itinerary length, Failed means it did not
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// trackingID is the sequential identifier assigned by the registry on
	// admission; zero while the order is pending
	trackingID int64

	// legs is the itinerary; index 0 is the shipper's origin leg
	legs []Leg

	// currentStep indexes the leg awaiting completion
	currentStep int

	// status is the current lifecycle state
	status Status

	// totalIncentive is the amount accrued at creation
	totalIncentive int64

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates an order with a fixed itinerary. The creator must be the
// party that owns leg 0; this is the capability check that only a shipper can
// open an order for itself.
//
// The order starts Pending with currentStep 0 and must be submitted for
// admission before legs can be reported.
func NewOrder(id kernel.UUID, creator kernel.UUID, legs []Leg) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := creator.Validate(); err != nil {
		return nil, err
	}
	if len(legs) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause("itinerary is invalid",
			fmt.Errorf("%d legs: %w", len(legs), ErrItineraryTooShort))
	}
	if !legs[0].Party().IsEqual(creator) {
		return nil, errs.NewValueIsInvalidErrorWithCause("creator is invalid",
			fmt.Errorf("creator %s does not own the origin leg: %w", creator, ErrPartyNotAuthorized))
	}

	// The total accrues the origin leg's incentive once per itinerary leg.
	// This is the ledger's historical accrual policy and is pinned by test;
	// per-leg incentives are paid out individually on completion regardless.
	var total int64
	for range legs {
		total += legs[0].Incentive()
	}

	return &Order{
		id:             id,
		legs:           append([]Leg(nil), legs...),
		status:         StatusPending,
		totalIncentive: total,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage.
// Unlike NewOrder it does not re-run creation-time checks beyond structural
// validation, so a persisted order restores to exactly its saved state.
func RestoreOrder(
	id kernel.UUID, trackingID int64, legs []Leg,
	currentStep int, status Status, totalIncentive int64,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(legs) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause("itinerary is invalid",
			fmt.Errorf("%d legs: %w", len(legs), ErrItineraryTooShort))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if currentStep < 0 || currentStep > len(legs) {
		return nil, errs.NewValueIsOutOfRangeError("currentStep", currentStep, 0, len(legs))
	}

	return &Order{
		id:             id,
		trackingID:     trackingID,
		legs:           append([]Leg(nil), legs...),
		currentStep:    currentStep,
		status:         status,
		totalIncentive: totalIncentive,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingID returns the registry-assigned sequential identifier,
// or zero for an order that has not been admitted.
func (o *Order) TrackingID() int64 {
	return o.trackingID
}

// Legs returns a copy of the itinerary.
func (o *Order) Legs() []Leg {
	return append([]Leg(nil), o.legs...)
}

// Leg returns the itinerary leg at index i.
func (o *Order) Leg(i int) (Leg, error) {
	if i < 0 || i >= len(o.legs) {
		return Leg{}, errs.NewValueIsOutOfRangeError("legIndex", i, 0, len(o.legs)-1)
	}
	return o.legs[i], nil
}

// CurrentStep returns the index of the leg awaiting completion.
// It never decreases across any sequence of operations.
func (o *Order) CurrentStep() int {
	return o.currentStep
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// TotalIncentive returns the amount accrued at creation.
func (o *Order) TotalIncentive() int64 {
	return o.totalIncentive
}

// Origin returns the shipper party that owns leg 0.
func (o *Order) Origin() kernel.UUID {
	return o.legs[0].Party()
}

// IsTerminal reports whether the order accepts no further leg mutation.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// IsCompleted reports whether every leg completed successfully.
func (o *Order) IsCompleted() bool {
	return o.status == StatusCompleted
}

// IsFailed reports whether the order ended with an explicit failure report.
func (o *Order) IsFailed() bool {
	return o.status == StatusFailed
}

// IsLastMile reports whether the order is live and its current leg targets the
// final-delivery code. The same carrier typically performs both the penultimate
// and final legs, so a last-mile order is eligible for auto-acceptance of the
// next leg without a fresh launch.
func (o *Order) IsLastMile() bool {
	if o.IsTerminal() || o.currentStep >= len(o.legs) {
		return false
	}
	return o.legs[o.currentStep].Target() == CodeLastMile
}

// Submit performs the one-time admission transition. Only the origin party may
// submit; the origin leg is stamped with the caller-supplied time and the
// current step advances to the first carrier leg.
//
// Admission against the registry must be validated before calling Submit so
// that a rejected admission leaves the order untouched.
func (o *Order) Submit(origin kernel.UUID, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.legs[0].Party().IsEqual(origin) {
		return errs.NewValueIsInvalidErrorWithCause("origin is invalid",
			fmt.Errorf("%s is not the origin party: %w", origin, ErrPartyNotAuthorized))
	}

	newStatus, err := o.status.Submit()
	if err != nil {
		return err
	}

	o.legs[0].result = o.legs[0].target
	o.legs[0].completedAt = at
	o.currentStep = 1
	o.status = newStatus
	return nil
}

// ReportLeg records the outcome of the current leg. The reporter must be the
// party assigned to the current step and the code must be a valid status code
// or the reserved failure code.
//
// On CodeFailed the current leg is marked failed and the order becomes Failed
// without advancing the step. On a code matching the leg's target the leg is
// stamped with the caller-supplied time and the step advances; reaching the end
// of the itinerary completes the order. Any other code is a mismatch and leaves
// the order untouched.
func (o *Order) ReportLeg(reporter kernel.UUID, at time.Time, code StatusCode) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.IsTerminal() {
		return ErrOrderAlreadyTerminal
	}
	if o.status != StatusInTransit {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to report a leg", o.status))
	}

	current := &o.legs[o.currentStep]
	if !current.party.IsEqual(reporter) {
		return errs.NewValueIsInvalidErrorWithCause("reporter is invalid",
			fmt.Errorf("%s is not assigned to step %d: %w", reporter, o.currentStep, ErrPartyNotAuthorized))
	}

	if code.IsFailure() {
		newStatus, err := o.status.Fail()
		if err != nil {
			return err
		}

		current.result = CodeFailed
		o.status = newStatus
		return nil
	}

	if err := code.Validate(); err != nil {
		return err
	}
	if code != current.target {
		return fmt.Errorf("step %d expects %s, got %s: %w",
			o.currentStep, current.target, code, ErrCodeMismatch)
	}

	current.result = code
	current.completedAt = at
	o.currentStep++

	if o.currentStep == len(o.legs) {
		newStatus, err := o.status.Complete()
		if err != nil {
			return err
		}
		o.status = newStatus
	}

	return nil
}

// AssignTrackingID records the registry-assigned sequential identifier.
// It is one-shot: the registry assigns exactly one id per admitted order.
func (o *Order) AssignTrackingID(trackingID int64) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if trackingID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("trackingID is invalid",
			fmt.Errorf("%d is not greater than 0", trackingID))
	}
	if o.trackingID != 0 {
		return ErrTrackingIDAlreadyAssigned
	}

	o.trackingID = trackingID
	return nil
}
