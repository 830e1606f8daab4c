// Package events defines the append-only audit records the freight ledger
// emits for external observers. Every state-changing operation produces its
// events inside the same transaction that applies the change, so the audit
// log never shows an effect whose transaction rolled back.
package events

import (
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
)

// Event is one append-only audit record.
type Event interface {
	// EventName returns the stable record type name used in the audit log.
	EventName() string
}

// OrderCreated records an order's admission and its assigned tracking id.
type OrderCreated struct {
	OrderID    kernel.UUID `json:"orderId"`
	TrackingID int64       `json:"trackingId"`
}

func (OrderCreated) EventName() string { return "order.created" }

// OrderTransferred records a handover of an order between parties.
type OrderTransferred struct {
	OrderID  kernel.UUID `json:"orderId"`
	From     kernel.UUID `json:"from"`
	To       kernel.UUID `json:"to"`
	LegIndex int         `json:"legIndex"`
}

func (OrderTransferred) EventName() string { return "order.transferred" }

// OrderCompleted records an order reaching its final status code.
type OrderCompleted struct {
	OrderID    kernel.UUID `json:"orderId"`
	TrackingID int64       `json:"trackingId"`
}

func (OrderCompleted) EventName() string { return "order.completed" }

// OrderFailed records an order terminating on a failure code.
type OrderFailed struct {
	OrderID  kernel.UUID      `json:"orderId"`
	LegIndex int              `json:"legIndex"`
	Code     order.StatusCode `json:"code"`
}

func (OrderFailed) EventName() string { return "order.failed" }

// IncentiveUpdated records one incentive accrual to a recipient.
type IncentiveUpdated struct {
	Recipient kernel.UUID `json:"recipient"`
	Amount    int64       `json:"amount"`
}

func (IncentiveUpdated) EventName() string { return "incentive.updated" }

// Settled records one settlement step: the amount paid out and the remainder
// staged for the next settlement.
type Settled struct {
	Recipient kernel.UUID `json:"recipient"`
	Paid      int64       `json:"paid"`
	Remaining int64       `json:"remaining"`
}

func (Settled) EventName() string { return "incentive.settled" }

// CarrierRegistered records a carrier joining the registry.
type CarrierRegistered struct {
	Carrier kernel.UUID `json:"carrier"`
}

func (CarrierRegistered) EventName() string { return "carrier.registered" }

// CarrierUnregistered records a carrier leaving the registry.
type CarrierUnregistered struct {
	Carrier kernel.UUID `json:"carrier"`
}

func (CarrierUnregistered) EventName() string { return "carrier.unregistered" }
