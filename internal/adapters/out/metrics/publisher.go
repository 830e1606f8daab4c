// Package metrics counts published domain events so order throughput is
// visible on /metrics without a Kafka consumer.
package metrics

import (
	"context"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "freightledger",
	Subsystem: "registry",
	Name:      "events_total",
	Help:      "Domain events committed, by event name. order.created counts admissions, order.completed and order.failed count terminal outcomes.",
}, []string{"event"})

// Publisher counts every committed event by name before forwarding to the
// wrapped publisher. next may be nil when no broker is configured; events are
// then counted and dropped.
type Publisher struct {
	next ports.EventPublisher
}

func NewPublisher(next ports.EventPublisher) *Publisher {
	return &Publisher{next: next}
}

func (p *Publisher) Publish(ctx context.Context, evts []events.Event) error {
	for _, evt := range evts {
		eventsTotal.WithLabelValues(evt.EventName()).Inc()
	}

	if p.next == nil {
		return nil
	}
	return p.next.Publish(ctx, evts)
}

func (p *Publisher) Close() error {
	if p.next == nil {
		return nil
	}
	return p.next.Close()
}
