package ports

import (
	"context"

	"freightledger/internal/core/domain/events"
)

// EventPublisher pushes committed domain events to the outside world, for
// example a message broker. Publication happens after the owning transaction
// commits; a publish failure is logged, never rolled back into the command.
type EventPublisher interface {
	Publish(ctx context.Context, evts []events.Event) error
	Close() error
}
