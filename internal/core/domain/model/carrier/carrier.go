package carrier

import (
	"errors"
	"fmt"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/errs"
	"freightledger/internal/pkg/guard"
	"freightledger/internal/pkg/linkset"
)

// Domain errors for carrier operations.
var (
	// ErrNameIsRequired is returned when creating a carrier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCarrierIsNotConstructed is returned when using an improperly initialized Carrier.
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")
	// ErrLegNotLaunched is returned when a leg update is reported for a task the
	// carrier never accepted.
	ErrLegNotLaunched = errors.New("leg was not launched by this carrier")
)

// TaskKey identifies one accepted tracking task: a leg of a specific order.
type TaskKey struct {
	OrderID  kernel.UUID
	LegIndex int
}

// Carrier is the per-company ledger aggregate. It records which (order, leg)
// tasks the company has launched (accepted for handling) and which orders it
// currently holds.
//
// Business rules:
//   - The launch log is append-only: tasks are accepted, never un-accepted
//   - Launching the same task twice is permitted and has no further effect
//   - A launched task is the precondition gate for reporting that leg's update
type Carrier struct {
	// id is the carrier's party identity
	id kernel.UUID
	// name is the human-readable company name
	name string
	// payoutRecipient is the party credited with this carrier's incentives
	payoutRecipient kernel.UUID
	// launched is the append-only acceptance log keyed by (order, leg)
	launched map[TaskKey]bool
	// orders is the insertion-ordered set of orders the carrier currently holds
	orders *linkset.Set[kernel.UUID]
	// guard ensures the carrier was properly constructed
	guard guard.ConstructorGuard
}

// NewCarrier creates a carrier company ledger. The payout recipient is the
// party credited when this carrier's incentives accrue; a company may direct
// payouts to a treasury identity distinct from its own.
func NewCarrier(id kernel.UUID, name string, payoutRecipient kernel.UUID) (*Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if err := payoutRecipient.Validate(); err != nil {
		return nil, err
	}

	return &Carrier{
		id:              id,
		name:            name,
		payoutRecipient: payoutRecipient,
		launched:        make(map[TaskKey]bool),
		orders:          linkset.New[kernel.UUID](),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreCarrier reconstructs a carrier aggregate from persistent storage,
// including its launch log and held orders.
func RestoreCarrier(
	id kernel.UUID, name string, payoutRecipient kernel.UUID,
	launched []TaskKey, orders []kernel.UUID,
) (*Carrier, error) {
	c, err := NewCarrier(id, name, payoutRecipient)
	if err != nil {
		return nil, err
	}

	for _, task := range launched {
		c.launched[task] = true
	}
	for _, orderID := range orders {
		if linkErr := c.orders.Link(orderID); linkErr != nil {
			return nil, fmt.Errorf("restoring held order %s: %w", orderID, linkErr)
		}
	}

	return c, nil
}

// Validate ensures the Carrier instance was properly constructed.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// ID returns the carrier's party identity.
func (c *Carrier) ID() kernel.UUID {
	return c.id
}

// Name returns the company name.
func (c *Carrier) Name() string {
	return c.name
}

// PayoutRecipient returns the party credited with this carrier's incentives.
func (c *Carrier) PayoutRecipient() kernel.UUID {
	return c.payoutRecipient
}

// Launch accepts the (order, leg) task for handling. Launching is idempotent:
// re-launching an accepted task succeeds without effect.
func (c *Carrier) Launch(orderID kernel.UUID, legIndex int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if legIndex < 1 {
		// Leg 0 is the shipper's own leg and is never launched by a carrier.
		return errs.NewValueIsOutOfRangeError("legIndex", legIndex, 1, legIndex)
	}

	c.launched[TaskKey{OrderID: orderID, LegIndex: legIndex}] = true
	return nil
}

// IsLaunched reports whether the (order, leg) task was accepted.
func (c *Carrier) IsLaunched(orderID kernel.UUID, legIndex int) bool {
	return c.launched[TaskKey{OrderID: orderID, LegIndex: legIndex}]
}

// EnsureLaunched returns ErrLegNotLaunched unless the task was accepted.
// This is the precondition gate for leg-completion reporting.
func (c *Carrier) EnsureLaunched(orderID kernel.UUID, legIndex int) error {
	if !c.IsLaunched(orderID, legIndex) {
		return fmt.Errorf("order %s leg %d: %w", orderID, legIndex, ErrLegNotLaunched)
	}
	return nil
}

// TakeOrder records that the carrier now holds the order. Taking an order the
// carrier already holds is permitted, which happens when the same company runs
// consecutive legs.
func (c *Carrier) TakeOrder(orderID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if c.orders.IsLinked(orderID) {
		return nil
	}
	return c.orders.Link(orderID)
}

// ReleaseOrder records that the carrier handed the order over. Releasing an
// order the carrier does not hold is a no-op.
func (c *Carrier) ReleaseOrder(orderID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.orders.IsLinked(orderID) {
		return nil
	}
	return c.orders.Unlink(orderID)
}

// HoldsOrder reports whether the carrier currently holds the order.
func (c *Carrier) HoldsOrder(orderID kernel.UUID) bool {
	return c.orders.IsLinked(orderID)
}

// Orders returns the held orders in the order they were taken.
func (c *Carrier) Orders() []kernel.UUID {
	return c.orders.Members()
}

// LaunchedTasks returns the accepted tasks. Order is unspecified; the launch
// log is a set, not a sequence.
func (c *Carrier) LaunchedTasks() []TaskKey {
	tasks := make([]TaskKey, 0, len(c.launched))
	for task := range c.launched {
		tasks = append(tasks, task)
	}
	return tasks
}
