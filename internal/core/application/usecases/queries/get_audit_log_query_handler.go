package queries

import (
	"context"

	"freightledger/internal/core/ports"
)

// GetAuditLogQueryHandler retrieves recent audit log entries through the
// audit repository, which owns the newest-first ordering.
type GetAuditLogQueryHandler struct {
	auditRepo ports.AuditRepository
}

// NewGetAuditLogQueryHandler creates a handler for audit log queries.
func NewGetAuditLogQueryHandler(auditRepo ports.AuditRepository) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{auditRepo: auditRepo}
}

// Handle executes the query to retrieve the newest entries, newest first.
func (h GetAuditLogQueryHandler) Handle(
	ctx context.Context,
	query GetAuditLogQuery,
) ([]GetAuditLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.auditRepo.GetRecent(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	entries := make([]GetAuditLogQueryResponse, 0, len(records))
	for _, record := range records {
		entries = append(entries, GetAuditLogQueryResponse{
			ID:         record.ID,
			Name:       record.Name,
			Payload:    record.Payload,
			OccurredAt: record.OccurredAt,
		})
	}

	return entries, nil
}
