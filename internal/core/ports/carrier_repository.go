// Package ports defines repository interfaces for the freight ledger domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
)

// CarrierRepository defines the persistence contract for carrier aggregates.
// Provides methods for storing, retrieving, and querying carrier entities
// with their complete state including launched tasks and held orders.
type CarrierRepository interface {
	// Add persists a new carrier aggregate to storage.
	// The carrier must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *carrier.Carrier) error

	// Update persists changes to an existing carrier aggregate.
	// The carrier must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *carrier.Carrier) error

	// Get retrieves a carrier aggregate by its unique identifier.
	// Returns the complete carrier with its launched tasks and held orders.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	// GetAllByIDs retrieves the carrier aggregates for the given identifiers.
	// Used by leg reporting to resolve every carrier named in an itinerary
	// within one transaction. Returns an error if any identifier is unknown.
	GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*carrier.Carrier, error)
}
