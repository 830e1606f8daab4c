// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freightledger/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CarrierRepoFactory provides access to carrier repository within a transaction.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// RegistryRepoFactory provides access to the registry repository within a transaction.
	RegistryRepoFactory interface {
		RegistryRepository() ports.RegistryRepository
	}

	// AuditRepoFactory provides access to the audit log within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CarrierUoW manages transactions for carrier-only operations.
	// Used when commands only modify carrier aggregates.
	CarrierUoW interface {
		TxManager
		CarrierRepoFactory
	}

	// CarrierUoWFactory creates new carrier unit of work instances.
	CarrierUoWFactory interface {
		Create() CarrierUoW
	}

	// MembershipUoW manages transactions touching carrier membership: the
	// carrier aggregate, the registry and the audit log.
	MembershipUoW interface {
		TxManager
		CarrierRepoFactory
		RegistryRepoFactory
		AuditRepoFactory
	}

	// MembershipUoWFactory creates new membership unit of work instances.
	MembershipUoWFactory interface {
		Create() MembershipUoW
	}

	// SettlementUoW manages transactions for settlement operations.
	SettlementUoW interface {
		TxManager
		RegistryRepoFactory
		AuditRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// UoW manages transactions across every aggregate the tracking protocol
	// touches. Used for commands that coordinate order, carrier and registry
	// changes together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   carrierRepo := uow.CarrierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CarrierRepoFactory
		RegistryRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
