package ports

import (
	"context"

	"freightledger/internal/core/domain/model/registry"
)

// RegistryRepository defines the persistence contract for the registry
// aggregate. The ledger keeps exactly one registry; Get loads it and Save
// writes the whole aggregate back within the current transaction.
type RegistryRepository interface {
	// Get loads the singleton registry aggregate, creating an empty one on
	// first use.
	Get(ctx context.Context) (*registry.Registry, error)

	// Save persists the registry aggregate.
	Save(ctx context.Context, aggregate *registry.Registry) error
}
