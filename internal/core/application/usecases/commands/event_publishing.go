package commands

import (
	"context"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/ports"

	"github.com/labstack/gommon/log"
)

// publishCommitted pushes events to the broker after the transaction has
// committed. Failures are logged rather than returned: the state change is
// already durable and the audit log holds the authoritative record.
func publishCommitted(ctx context.Context, publisher ports.EventPublisher, evts []events.Event) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts); err != nil {
		log.Errorf("publishing %d events after commit: %v", len(evts), err)
	}
}
