// Package auditrepo persists the append-only audit log of domain events.
// Appends run inside the owning command's transaction, so a rolled-back
// command leaves no audit trace.
package auditrepo

import (
	"context"
	"encoding/json"
	"time"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/ports"

	"gorm.io/gorm"
)

// AuditEventDTO represents one audit log row. The payload is the event's
// JSON encoding at commit time.
type AuditEventDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"type:varchar(64);not null;index"`
	Payload    []byte    `gorm:"type:jsonb;not null"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null;index"`
}

// TableName specifies the database table name for audit rows.
func (AuditEventDTO) TableName() string {
	return "audit_events"
}

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db, now: time.Now}
}

// Append persists the events in occurrence order.
func (r *GormAuditRepository) Append(ctx context.Context, evts []events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	at := r.now().UTC()
	dtos := make([]AuditEventDTO, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}
		dtos = append(dtos, AuditEventDTO{
			Name:       evt.EventName(),
			Payload:    payload,
			OccurredAt: at,
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetRecent returns the newest entries, newest first.
func (r *GormAuditRepository) GetRecent(ctx context.Context, limit int) ([]ports.AuditRecord, error) {
	var dtos []AuditEventDTO
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]ports.AuditRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, ports.AuditRecord{
			ID:         dto.ID,
			Name:       dto.Name,
			Payload:    dto.Payload,
			OccurredAt: dto.OccurredAt,
		})
	}

	return records, nil
}
