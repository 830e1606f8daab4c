package commands_test

import (
	"context"

	"freightledger/internal/core/application/usecases/commands"
	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/core/domain/model/registry"
	"freightledger/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Add(ctx context.Context, c *carrier.Carrier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarrierRepository) Update(ctx context.Context, c *carrier.Carrier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*carrier.Carrier, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*carrier.Carrier), args.Error(1)
}

type MockRegistryRepository struct{ mock.Mock }

func (m *MockRegistryRepository) Get(ctx context.Context) (*registry.Registry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Registry), args.Error(1)
}

func (m *MockRegistryRepository) Save(ctx context.Context, r *registry.Registry) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, evts []events.Event) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

func (m *MockAuditRepository) GetRecent(ctx context.Context, limit int) ([]ports.AuditRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.AuditRecord), args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}

func (m *MockUoW) RegistryRepository() ports.RegistryRepository {
	args := m.Called()
	return args.Get(0).(ports.RegistryRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCarrierUoWFactory struct{ mock.Mock }

func (m *MockCarrierUoWFactory) Create() commands.CarrierUoW {
	args := m.Called()
	return args.Get(0).(commands.CarrierUoW)
}

type MockMembershipUoWFactory struct{ mock.Mock }

func (m *MockMembershipUoWFactory) Create() commands.MembershipUoW {
	args := m.Called()
	return args.Get(0).(commands.MembershipUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

// capturingPublisher records what was published after commit.
type capturingPublisher struct {
	published [][]events.Event
}

func (p *capturingPublisher) Publish(_ context.Context, evts []events.Event) error {
	p.published = append(p.published, evts)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

// failingPublisher rejects every publish so tests can show that a broker
// outage never undoes a committed command.
type failingPublisher struct {
	err error
}

func (p *failingPublisher) Publish(context.Context, []events.Event) error { return p.err }

func (p *failingPublisher) Close() error { return nil }
