package queries

import (
	"errors"
	"time"

	"freightledger/internal/pkg/guard"
)

var (
	ErrGetAuditLogQueryIsNotConstructed = errors.New(
		"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// GetAuditLogQuery retrieves the most recent audit log entries, newest first.
type GetAuditLogQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetAuditLogQuery creates a query for the newest limit audit entries.
func NewGetAuditLogQuery(limit int) (GetAuditLogQuery, error) {
	q := GetAuditLogQuery{guard: guard.NewConstructorGuard()}

	if err := q.setLimit(limit); err != nil {
		return GetAuditLogQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

// Limit returns the maximum number of entries to return.
func (q GetAuditLogQuery) Limit() int {
	return q.limit
}

func (q *GetAuditLogQuery) setLimit(limit int) error {
	if limit < 1 {
		return ErrLimitIsInvalid
	}

	q.limit = limit
	return nil
}

// GetAuditLogQueryResponse represents one audit log entry in the read model.
// The payload is the event's JSON encoding as written at commit time.
type GetAuditLogQueryResponse struct {
	ID         int64
	Name       string
	Payload    []byte
	OccurredAt time.Time
}
