// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var ErrGetCarrierRatingsQueryIsNotConstructed = errors.New(
	"GetCarrierRatingsQuery must be created via NewGetCarrierRatingsQuery constructor",
)

// GetCarrierRatingsQuery retrieves the performance counters of every carrier
// that ever took an assignment. Counters survive unregistration, so the
// result may include carriers no longer in the membership set.
//
// Example:
//
//	query := NewGetCarrierRatingsQuery()
//	handler := NewGetCarrierRatingsQueryHandler(db)
//
//	ratings, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve ratings: %w", err)
//	}
//
//	for _, r := range ratings {
//	    fmt.Printf("%s: %d/%d completed\n", r.Name, r.CompletedTotal, r.AssignedTotal)
//	}
type GetCarrierRatingsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCarrierRatingsQuery creates a query to retrieve all carrier ratings.
// This is a parameterless query that fetches the complete rating list.
func NewGetCarrierRatingsQuery() GetCarrierRatingsQuery {
	return GetCarrierRatingsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCarrierRatingsQuery) Validate() error {
	return q.guard.Validate(ErrGetCarrierRatingsQueryIsNotConstructed)
}

// GetCarrierRatingsQueryResponse represents one carrier's counters in the
// read model.
type GetCarrierRatingsQueryResponse struct {
	Carrier        kernel.UUID
	Name           string
	AssignedTotal  int64
	CompletedTotal int64
}
