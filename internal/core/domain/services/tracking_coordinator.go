package services

import (
	"fmt"
	"time"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/core/domain/model/registry"
	"freightledger/internal/pkg/errs"
)

// TrackingCoordinator is the domain service that runs the cross-aggregate
// tracking protocol: order admission, leg handovers and settlement. Each
// operation validates every precondition across all involved aggregates before
// mutating any of them, so a rejected operation leaves no partial state. The
// surrounding unit of work extends the same all-or-nothing property to
// persistence.
//
// All operations return the audit events they produced, in occurrence order,
// for the caller to append to the audit log within the same transaction.
type TrackingCoordinator struct{}

// NewTrackingCoordinator creates a new TrackingCoordinator instance.
func NewTrackingCoordinator() TrackingCoordinator {
	return TrackingCoordinator{}
}

// Submit admits a pending order. Admission is validated against the registry
// before the order's own submission transition runs, so an itinerary naming an
// unregistered carrier is rejected with the order untouched: no time stamp, no
// step advance, no tracking id.
//
// firstCarrier must be the carrier aggregate owning leg 1; it takes the order
// on success and is signalled through the OrderTransferred event.
func (tc TrackingCoordinator) Submit(
	o *order.Order, reg *registry.Registry, firstCarrier *carrier.Carrier,
	origin kernel.UUID, at time.Time,
) ([]events.Event, error) {
	if err := reg.ValidateAdmission(o); err != nil {
		return nil, err
	}

	firstLeg, err := o.Leg(1)
	if err != nil {
		return nil, err
	}
	if err = firstCarrier.Validate(); err != nil {
		return nil, err
	}
	if !firstCarrier.ID().IsEqual(firstLeg.Party()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("firstCarrier is invalid",
			fmt.Errorf("carrier %s does not own leg 1", firstCarrier.ID()))
	}

	if err = o.Submit(origin, at); err != nil {
		return nil, err
	}

	// Admission was validated above and execution is serialized within the
	// transaction, so these steps cannot fail against a consistent store; any
	// error here aborts the transaction before the staged state persists.
	trackingID, err := reg.Admit(o)
	if err != nil {
		return nil, err
	}
	if err = o.AssignTrackingID(trackingID); err != nil {
		return nil, err
	}
	if err = firstCarrier.TakeOrder(o.ID()); err != nil {
		return nil, err
	}

	return []events.Event{
		events.OrderCreated{OrderID: o.ID(), TrackingID: trackingID},
		events.OrderTransferred{OrderID: o.ID(), From: origin, To: firstLeg.Party(), LegIndex: 1},
	}, nil
}

// ReportLeg records a carrier's leg update and runs the follow-on protocol.
//
// Preconditions, all checked before any mutation:
//   - legIndex is the order's current step
//   - the reporting carrier launched (accepted) that task
//
// After the order's local transition:
//   - a failed order is released by the reporting carrier with no rating or
//     incentive effects
//   - a completed order is released and its ratings and incentives recorded,
//     resolving each carrier's payout recipient through carriersByParty
//   - a live order is handed to the next leg's carrier; when the order is now
//     in last-mile state and that carrier is the reporter, the next leg is
//     auto-accepted without a fresh launch
func (tc TrackingCoordinator) ReportLeg(
	o *order.Order, reg *registry.Registry, reporting *carrier.Carrier,
	carriersByParty map[kernel.UUID]*carrier.Carrier,
	legIndex int, at time.Time, code order.StatusCode,
) ([]events.Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := reporting.Validate(); err != nil {
		return nil, err
	}
	if o.IsTerminal() {
		return nil, order.ErrOrderAlreadyTerminal
	}
	if legIndex != o.CurrentStep() {
		return nil, errs.NewValueIsInvalidErrorWithCause("legIndex is invalid",
			fmt.Errorf("leg %d is not the current step %d", legIndex, o.CurrentStep()))
	}
	if err := reporting.EnsureLaunched(o.ID(), legIndex); err != nil {
		return nil, err
	}

	if err := o.ReportLeg(reporting.ID(), at, code); err != nil {
		return nil, err
	}

	if o.IsFailed() {
		// Failure is terminal with no rating or incentive effects.
		if err := reporting.ReleaseOrder(o.ID()); err != nil {
			return nil, err
		}
		return []events.Event{
			events.OrderFailed{OrderID: o.ID(), LegIndex: legIndex, Code: code},
		}, nil
	}

	if o.IsCompleted() {
		if err := reporting.ReleaseOrder(o.ID()); err != nil {
			return nil, err
		}

		accruals, err := reg.RecordCompletion(o, func(party kernel.UUID) (kernel.UUID, error) {
			c, ok := carriersByParty[party]
			if !ok {
				return kernel.UUID{}, errs.NewObjectNotFoundError("carrier", party.String())
			}
			return c.PayoutRecipient(), nil
		})
		if err != nil {
			return nil, err
		}

		evts := make([]events.Event, 0, len(accruals)+1)
		evts = append(evts, events.OrderCompleted{OrderID: o.ID(), TrackingID: o.TrackingID()})
		for _, a := range accruals {
			evts = append(evts, events.IncentiveUpdated{Recipient: a.Recipient, Amount: a.Amount})
		}
		return evts, nil
	}

	// Live order: hand over to the next leg's carrier.
	nextLeg, err := o.Leg(o.CurrentStep())
	if err != nil {
		return nil, err
	}
	next, ok := carriersByParty[nextLeg.Party()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", nextLeg.Party().String())
	}

	if !next.ID().IsEqual(reporting.ID()) {
		if err = reporting.ReleaseOrder(o.ID()); err != nil {
			return nil, err
		}
	}
	if err = next.TakeOrder(o.ID()); err != nil {
		return nil, err
	}

	if o.IsLastMile() && next.ID().IsEqual(reporting.ID()) {
		// Same-carrier continuation: the carrier that just reported keeps the
		// order into the last-mile leg without a fresh launch call.
		if err = next.Launch(o.ID(), o.CurrentStep()); err != nil {
			return nil, err
		}
	}

	return []events.Event{
		events.OrderTransferred{
			OrderID:  o.ID(),
			From:     reporting.ID(),
			To:       next.ID(),
			LegIndex: o.CurrentStep(),
		},
	}, nil
}

// Settle runs one settlement step for the recipient and reports the paid and
// newly staged amounts.
func (tc TrackingCoordinator) Settle(
	reg *registry.Registry, recipient kernel.UUID,
) (int64, int64, []events.Event, error) {
	paid, remaining, err := reg.Settle(recipient)
	if err != nil {
		return 0, 0, nil, err
	}

	return paid, remaining, []events.Event{
		events.Settled{Recipient: recipient, Paid: paid, Remaining: remaining},
	}, nil
}
