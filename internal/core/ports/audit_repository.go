package ports

import (
	"context"
	"time"

	"freightledger/internal/core/domain/events"
)

// AuditRecord is one persisted audit log entry as read back from storage.
type AuditRecord struct {
	ID         int64
	Name       string
	Payload    []byte
	OccurredAt time.Time
}

// AuditRepository appends domain events to the persistent audit log. Appends
// run inside the command's transaction so a rolled-back command leaves no
// audit trace.
type AuditRepository interface {
	// Append persists the events in occurrence order.
	Append(ctx context.Context, evts []events.Event) error

	// GetRecent returns the most recent entries, newest first.
	GetRecent(ctx context.Context, limit int) ([]AuditRecord, error)
}
