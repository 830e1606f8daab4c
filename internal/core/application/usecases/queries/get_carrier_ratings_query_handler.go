package queries

import (
	"context"
	"database/sql"

	"freightledger/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCarrierRatingsQueryHandler retrieves carrier performance counters.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetCarrierRatingsQueryHandler struct {
	db *gorm.DB
}

// NewGetCarrierRatingsQueryHandler creates a handler for rating retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetCarrierRatingsQueryHandler(db *gorm.DB) GetCarrierRatingsQueryHandler {
	return GetCarrierRatingsQueryHandler{db: db}
}

// Handle executes the query to retrieve all carrier ratings.
// The carrier name is joined in when the carrier aggregate still exists.
func (h GetCarrierRatingsQueryHandler) Handle(
	ctx context.Context,
	query GetCarrierRatingsQuery,
) ([]GetCarrierRatingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ratings := make([]GetCarrierRatingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.party,
			c.name,
			r.assigned_total,
			r.completed_total
		FROM registry_ratings r
		LEFT JOIN carriers c ON c.id = r.party
		ORDER BY r.party
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rating GetCarrierRatingsQueryResponse
		var party uuid.UUID
		var name sql.NullString

		err = rows.Scan(
			&party,
			&name,
			&rating.AssignedTotal,
			&rating.CompletedTotal,
		)
		if err != nil {
			return nil, err
		}

		carrierID, idErr := kernel.UUIDFromBytes(party[:])
		if idErr != nil {
			return nil, idErr
		}
		rating.Carrier = carrierID
		rating.Name = name.String
		ratings = append(ratings, rating)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ratings, nil
}
