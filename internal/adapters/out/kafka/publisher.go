// Package kafka publishes committed domain events to a Kafka topic.
// Publication happens after the owning transaction commits; consumers see
// only events whose state changes are durable.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"freightledger/internal/core/domain/events"

	"github.com/labstack/gommon/log"
	segmentio "github.com/segmentio/kafka-go"
)

// Publisher writes domain events to a single topic, keyed by event name so
// consumers can partition by kind.
type Publisher struct {
	writer *segmentio.Writer
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &segmentio.Writer{
			Addr:     segmentio.TCP(brokers...),
			Topic:    topic,
			Balancer: &segmentio.LeastBytes{},
		},
	}
}

// Publish writes the events in order. The payload is the event's JSON
// encoding wrapped in an envelope naming the event.
func (p *Publisher) Publish(ctx context.Context, evts []events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]segmentio.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(envelope{Name: evt.EventName(), Payload: evt})
		if err != nil {
			return fmt.Errorf("encoding %s: %w", evt.EventName(), err)
		}
		messages = append(messages, segmentio.Message{
			Key:   []byte(evt.EventName()),
			Value: payload,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		log.Errorf("publishing %d events: %v", len(messages), err)
		return err
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// envelope is the wire format for published events.
type envelope struct {
	Name    string       `json:"name"`
	Payload events.Event `json:"payload"`
}
