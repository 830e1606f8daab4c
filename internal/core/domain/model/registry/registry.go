package registry

import (
	"errors"
	"fmt"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/pkg/errs"
	"freightledger/internal/pkg/guard"
	"freightledger/internal/pkg/linkset"
)

// Domain errors for registry operations.
var (
	// ErrRegistryIsNotConstructed is returned when using an improperly initialized Registry.
	ErrRegistryIsNotConstructed = errors.New("Registry must be created via NewRegistry constructor")
	// ErrCarrierNotRegistered is returned when an itinerary names a carrier that
	// is not currently a registry member, or when unregistering a non-member.
	ErrCarrierNotRegistered = errors.New("carrier is not registered")
	// ErrCarrierAlreadyRegistered is returned when registering a current member.
	ErrCarrierAlreadyRegistered = errors.New("carrier is already registered")
	// ErrOrderAlreadyAdmitted is returned when admitting an order twice.
	ErrOrderAlreadyAdmitted = errors.New("order is already admitted")
	// ErrOrderNotCompleted is returned when recording completion of a live or failed order.
	ErrOrderNotCompleted = errors.New("order is not completed")
	// ErrBalanceUnderflow is returned when a settlement would reduce a balance
	// below zero. Underflow is rejected, never wrapped around.
	ErrBalanceUnderflow = errors.New("incentive balance underflow")
)

// Rating is the per-carrier performance counter pair. Each counter moves by
// exactly one per order per carrier, regardless of how many legs the carrier
// holds in that order.
type Rating struct {
	AssignedTotal  int64
	CompletedTotal int64
}

// Balance is a recipient's incentive bookkeeping. AccruedTotal grows as orders
// complete; PendingSettlement is the amount staged by the previous settlement
// call and paid out by the next one.
type Balance struct {
	AccruedTotal      int64
	PendingSettlement int64
}

// Accrual records one incentive credit made while recording an order completion.
type Accrual struct {
	Recipient kernel.UUID
	Amount    int64
}

// Registry is the central coordinator aggregate of the freight ledger. It owns
// carrier membership, per-carrier performance ratings, per-recipient incentive
// balances and the sequential tracking-id counter.
//
// Membership sets are insertion-ordered and enumerable; the nil identity is the
// reserved sentinel and can never be registered.
type Registry struct {
	// carriers is the ordered set of registered carrier parties
	carriers *linkset.Set[kernel.UUID]
	// ratings holds performance counters per carrier, kept across unregistration
	ratings map[kernel.UUID]Rating
	// recipients is the ordered set of parties with outstanding accrued incentive
	recipients *linkset.Set[kernel.UUID]
	// balances holds incentive bookkeeping per recipient
	balances map[kernel.UUID]Balance
	// nextTrackingID is the sequential order identifier counter, starting at 1
	nextTrackingID int64
	// admitted maps admitted order ids to their assigned tracking ids
	admitted map[kernel.UUID]int64
	// guard ensures the registry was properly constructed
	guard guard.ConstructorGuard
}

// NewRegistry creates an empty registry. Tracking ids start at 1.
func NewRegistry() *Registry {
	return &Registry{
		carriers:       linkset.New[kernel.UUID](),
		ratings:        make(map[kernel.UUID]Rating),
		recipients:     linkset.New[kernel.UUID](),
		balances:       make(map[kernel.UUID]Balance),
		nextTrackingID: 1,
		admitted:       make(map[kernel.UUID]int64),
		guard:          guard.NewConstructorGuard(),
	}
}

// RestoreRegistry reconstructs the registry aggregate from persistent storage.
func RestoreRegistry(
	nextTrackingID int64,
	carriers []kernel.UUID, ratings map[kernel.UUID]Rating,
	recipients []kernel.UUID, balances map[kernel.UUID]Balance,
	admitted map[kernel.UUID]int64,
) (*Registry, error) {
	if nextTrackingID < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("nextTrackingID is invalid",
			fmt.Errorf("%d is not greater than 0", nextTrackingID))
	}

	r := NewRegistry()
	r.nextTrackingID = nextTrackingID

	for _, c := range carriers {
		if err := r.carriers.Link(c); err != nil {
			return nil, fmt.Errorf("restoring carrier %s: %w", c, err)
		}
	}
	for _, p := range recipients {
		if err := r.recipients.Link(p); err != nil {
			return nil, fmt.Errorf("restoring recipient %s: %w", p, err)
		}
	}
	for c, rating := range ratings {
		r.ratings[c] = rating
	}
	for p, b := range balances {
		r.balances[p] = b
	}
	for o, id := range admitted {
		r.admitted[o] = id
	}

	return r, nil
}

// Validate ensures the Registry instance was properly constructed.
func (r *Registry) Validate() error {
	if r == nil {
		return ErrRegistryIsNotConstructed
	}
	return r.guard.Validate(ErrRegistryIsNotConstructed)
}

// RegisterCarrier links the carrier into the membership set.
func (r *Registry) RegisterCarrier(party kernel.UUID) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := party.Validate(); err != nil {
		return err
	}
	if err := r.carriers.Link(party); err != nil {
		return fmt.Errorf("carrier %s: %w", party, ErrCarrierAlreadyRegistered)
	}
	return nil
}

// UnregisterCarrier removes the carrier from the membership set. Ratings are
// kept. No in-flight-order check is performed: a carrier with open assignments
// can be unregistered, and its orders keep progressing.
func (r *Registry) UnregisterCarrier(party kernel.UUID) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := r.carriers.Unlink(party); err != nil {
		return fmt.Errorf("carrier %s: %w", party, ErrCarrierNotRegistered)
	}
	return nil
}

// IsRegistered reports whether the party is a current carrier member.
func (r *Registry) IsRegistered(party kernel.UUID) bool {
	return r.carriers.IsLinked(party)
}

// Carriers returns the registered carriers in registration order.
func (r *Registry) Carriers() []kernel.UUID {
	return r.carriers.Members()
}

// ValidateAdmission checks an order's itinerary against the membership set
// without mutating anything: every non-origin leg must name a registered
// carrier, and the order must not be admitted already. Running this before the
// order's own submission transition keeps a rejected admission side-effect free.
func (r *Registry) ValidateAdmission(o *order.Order) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if _, ok := r.admitted[o.ID()]; ok {
		return fmt.Errorf("order %s: %w", o.ID(), ErrOrderAlreadyAdmitted)
	}

	legs := o.Legs()
	if len(legs) < 2 {
		return order.ErrItineraryTooShort
	}
	for i := 1; i < len(legs); i++ {
		if !r.IsRegistered(legs[i].Party()) {
			return fmt.Errorf("leg %d carrier %s: %w", i, legs[i].Party(), ErrCarrierNotRegistered)
		}
	}

	return nil
}

// Admit records the order's admission: every distinct carrier in the itinerary
// gets its assignedTotal incremented exactly once, and the order receives the
// next sequential tracking id.
func (r *Registry) Admit(o *order.Order) (int64, error) {
	if err := r.ValidateAdmission(o); err != nil {
		return 0, err
	}

	legs := o.Legs()
	applied := make(map[kernel.UUID]bool)
	for i := 1; i < len(legs); i++ {
		party := legs[i].Party()
		if applied[party] {
			continue
		}
		applied[party] = true

		rating := r.ratings[party]
		rating.AssignedTotal++
		r.ratings[party] = rating
	}

	trackingID := r.nextTrackingID
	r.nextTrackingID++
	r.admitted[o.ID()] = trackingID
	return trackingID, nil
}

// TrackingIDOf returns the tracking id assigned at admission.
func (r *Registry) TrackingIDOf(orderID kernel.UUID) (int64, bool) {
	id, ok := r.admitted[orderID]
	return id, ok
}

// RecordCompletion applies the rating and incentive effects of a completed
// order. The origin party's own leg incentive, when nonzero, accrues to the
// origin directly; every carrier leg's nonzero incentive accrues to the
// carrier's designated payout recipient, resolved through resolveRecipient.
// Each distinct carrier's completedTotal moves by exactly one regardless of
// its leg count. Failed orders carry no rating or incentive effects and are
// rejected here.
//
// The returned accruals are in leg order, origin first, for audit logging.
func (r *Registry) RecordCompletion(
	o *order.Order,
	resolveRecipient func(party kernel.UUID) (kernel.UUID, error),
) ([]Accrual, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsCompleted() {
		return nil, fmt.Errorf("order %s: %w", o.ID(), ErrOrderNotCompleted)
	}

	legs := o.Legs()
	var accruals []Accrual

	if amount := legs[0].Incentive(); amount > 0 {
		r.accrue(legs[0].Party(), amount)
		accruals = append(accruals, Accrual{Recipient: legs[0].Party(), Amount: amount})
	}

	applied := make(map[kernel.UUID]bool)
	for i := 1; i < len(legs); i++ {
		party := legs[i].Party()

		if amount := legs[i].Incentive(); amount > 0 {
			recipient, err := resolveRecipient(party)
			if err != nil {
				return nil, err
			}
			r.accrue(recipient, amount)
			accruals = append(accruals, Accrual{Recipient: recipient, Amount: amount})
		}

		if applied[party] {
			continue
		}
		applied[party] = true

		rating := r.ratings[party]
		rating.CompletedTotal++
		r.ratings[party] = rating
	}

	return accruals, nil
}

// accrue credits the recipient and links it into the recipient set while it
// carries an outstanding balance.
func (r *Registry) accrue(recipient kernel.UUID, amount int64) {
	b := r.balances[recipient]
	b.AccruedTotal += amount
	r.balances[recipient] = b

	if !r.recipients.IsLinked(recipient) {
		// Link can only fail on a duplicate or the nil sentinel; accrual targets
		// are validated party identities.
		_ = r.recipients.Link(recipient)
	}
}

// Settle runs one step of the two-phase stage-then-pay settlement. The amount
// staged by the previous call is paid out, the remainder becomes the newly
// staged amount, and a recipient settled down to zero leaves the recipient set.
//
// No value transfer happens here; external payout follows the emitted record.
func (r *Registry) Settle(recipient kernel.UUID) (paid int64, remaining int64, err error) {
	if err = r.Validate(); err != nil {
		return 0, 0, err
	}
	if err = recipient.Validate(); err != nil {
		return 0, 0, err
	}

	b := r.balances[recipient]
	if b.PendingSettlement > b.AccruedTotal {
		return 0, 0, fmt.Errorf("recipient %s: pending %d exceeds accrued %d: %w",
			recipient, b.PendingSettlement, b.AccruedTotal, ErrBalanceUnderflow)
	}

	paid = b.PendingSettlement
	b.AccruedTotal -= paid
	b.PendingSettlement = b.AccruedTotal
	remaining = b.AccruedTotal

	if b.AccruedTotal == 0 {
		delete(r.balances, recipient)
		if r.recipients.IsLinked(recipient) {
			_ = r.recipients.Unlink(recipient)
		}
	} else {
		r.balances[recipient] = b
	}

	return paid, remaining, nil
}

// RatingOf returns the carrier's performance counters.
func (r *Registry) RatingOf(party kernel.UUID) Rating {
	return r.ratings[party]
}

// Ratings returns a copy of all performance counters.
func (r *Registry) Ratings() map[kernel.UUID]Rating {
	out := make(map[kernel.UUID]Rating, len(r.ratings))
	for k, v := range r.ratings {
		out[k] = v
	}
	return out
}

// BalanceOf returns the recipient's incentive bookkeeping.
func (r *Registry) BalanceOf(recipient kernel.UUID) Balance {
	return r.balances[recipient]
}

// Balances returns a copy of all incentive balances.
func (r *Registry) Balances() map[kernel.UUID]Balance {
	out := make(map[kernel.UUID]Balance, len(r.balances))
	for k, v := range r.balances {
		out[k] = v
	}
	return out
}

// Recipients returns the parties with outstanding accrued incentive, oldest first.
func (r *Registry) Recipients() []kernel.UUID {
	return r.recipients.Members()
}

// AdmittedOrders returns a copy of the order-to-tracking-id map.
func (r *Registry) AdmittedOrders() map[kernel.UUID]int64 {
	out := make(map[kernel.UUID]int64, len(r.admitted))
	for k, v := range r.admitted {
		out[k] = v
	}
	return out
}

// NextTrackingID returns the counter value the next admission will consume.
func (r *Registry) NextTrackingID() int64 {
	return r.nextTrackingID
}
