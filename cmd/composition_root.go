package cmd

import (
	"freightledger/internal/adapters/out/kafka"
	"freightledger/internal/adapters/out/metrics"
	"freightledger/internal/adapters/out/postgres"
	"freightledger/internal/adapters/out/postgres/auditrepo"
	"freightledger/internal/core/application/usecases/commands"
	"freightledger/internal/core/application/usecases/queries"
	"freightledger/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory and one event publisher.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	var broker ports.EventPublisher
	if len(config.KafkaBrokers) > 0 {
		broker = kafka.NewPublisher(config.KafkaBrokers, config.KafkaTopic)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  metrics.NewPublisher(broker),
	}
}

// ClosePublisher releases the event publisher, if one was configured.
func (c *CompositionRoot) ClosePublisher() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateLaunchLegCommandHandler() commands.LaunchLegCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLaunchLegCommandHandler(f)
}

func (c *CompositionRoot) CreateReportLegCommandHandler() commands.ReportLegCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLegCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRegisterCarrierCommandHandler() commands.RegisterCarrierCommandHandler {
	var f commands.MembershipUoWFactory = FuncMembershipUoWFactory(func() commands.MembershipUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCarrierCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUnregisterCarrierCommandHandler() commands.UnregisterCarrierCommandHandler {
	var f commands.MembershipUoWFactory = FuncMembershipUoWFactory(func() commands.MembershipUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnregisterCarrierCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSettleIncentiveCommandHandler() commands.SettleIncentiveCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettleIncentiveCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSettleDueIncentivesCommandHandler() commands.SettleDueIncentivesCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettleDueIncentivesCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetCarrierRatingsQueryHandler() queries.GetCarrierRatingsQueryHandler {
	return queries.NewGetCarrierRatingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRecipientBalancesQueryHandler() queries.GetRecipientBalancesQueryHandler {
	return queries.NewGetRecipientBalancesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditLogQueryHandler() queries.GetAuditLogQueryHandler {
	return queries.NewGetAuditLogQueryHandler(auditrepo.NewGormAuditRepository(c.gormDB))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCarrierUoWFactory func() commands.CarrierUoW

func (f FuncCarrierUoWFactory) Create() commands.CarrierUoW {
	return f()
}

type FuncMembershipUoWFactory func() commands.MembershipUoW

func (f FuncMembershipUoWFactory) Create() commands.MembershipUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
