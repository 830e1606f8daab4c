package postgres

import (
	"freightledger/internal/adapters/out/postgres/auditrepo"
	"freightledger/internal/adapters/out/postgres/carrierrepo"
	"freightledger/internal/adapters/out/postgres/orderrepo"
	"freightledger/internal/adapters/out/postgres/registryrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the freight ledger persists to.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLegDTO{},
		&carrierrepo.CarrierDTO{},
		&carrierrepo.CarrierTaskDTO{},
		&carrierrepo.CarrierOrderDTO{},
		&registryrepo.RegistryDTO{},
		&registryrepo.RegistryCarrierDTO{},
		&registryrepo.RegistryRatingDTO{},
		&registryrepo.RegistryRecipientDTO{},
		&registryrepo.RegistryBalanceDTO{},
		&registryrepo.RegistryAdmittedDTO{},
		&auditrepo.AuditEventDTO{},
	)
}
