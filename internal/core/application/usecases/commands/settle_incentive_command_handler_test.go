package commands_test

import (
	"testing"

	"freightledger/internal/core/application/usecases/commands"
	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// registryWithBalance builds a registry holding one recipient with the given
// accrued amount, staged for payout.
func registryWithBalance(t *testing.T, recipient kernel.UUID, accrued int64) *registry.Registry {
	t.Helper()
	reg, err := registry.RestoreRegistry(
		1,
		nil, nil,
		[]kernel.UUID{recipient},
		map[kernel.UUID]registry.Balance{recipient: {AccruedTotal: accrued, PendingSettlement: accrued}},
		nil,
	)
	require.NoError(t, err)
	return reg
}

func TestSettleIncentiveCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("pays the staged amount and publishes the record", func(t *testing.T) {
		recipient := kernel.NewUUID()
		reg := registryWithBalance(t, recipient, 8)

		cmd, err := commands.NewSettleIncentiveCommand(recipient)
		require.NoError(t, err)

		registryRepo := new(MockRegistryRepository)
		auditRepo := new(MockAuditRepository)
		uow := new(MockUoW)
		factory := new(MockSettlementUoWFactory)
		publisher := new(capturingPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RegistryRepository").Return(registryRepo)
		uow.On("AuditRepository").Return(auditRepo)
		registryRepo.On("Get", ctx).Return(reg, nil).Once()
		registryRepo.On("Save", ctx, reg).Return(nil).Once()
		auditRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewSettleIncentiveCommandHandler(factory, publisher)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, registry.Balance{}, reg.BalanceOf(recipient))

		require.Len(t, publisher.published, 1)
		settled, ok := publisher.published[0][0].(events.Settled)
		require.True(t, ok)
		assert.Equal(t, int64(8), settled.Paid)
		assert.Equal(t, int64(0), settled.Remaining)
	})
}

func TestSettleDueIncentivesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("sweeps every recipient once", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		reg, err := registry.RestoreRegistry(
			1,
			nil, nil,
			[]kernel.UUID{first, second},
			map[kernel.UUID]registry.Balance{
				first:  {AccruedTotal: 8, PendingSettlement: 8},
				second: {AccruedTotal: 3, PendingSettlement: 0},
			},
			nil,
		)
		require.NoError(t, err)

		registryRepo := new(MockRegistryRepository)
		auditRepo := new(MockAuditRepository)
		uow := new(MockUoW)
		factory := new(MockSettlementUoWFactory)
		publisher := new(capturingPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RegistryRepository").Return(registryRepo)
		uow.On("AuditRepository").Return(auditRepo)
		registryRepo.On("Get", ctx).Return(reg, nil).Once()
		registryRepo.On("Save", ctx, reg).Return(nil).Once()
		auditRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewSettleDueIncentivesCommandHandler(factory, publisher)
		err = handler.Handle(ctx, commands.NewSettleDueIncentivesCommand())

		require.NoError(t, err)
		// First recipient paid out fully; second staged for the next sweep.
		assert.Equal(t, registry.Balance{}, reg.BalanceOf(first))
		assert.Equal(t, registry.Balance{AccruedTotal: 3, PendingSettlement: 3}, reg.BalanceOf(second))

		require.Len(t, publisher.published, 1)
		require.Len(t, publisher.published[0], 2)
	})

	t.Run("empty ledger commits nothing", func(t *testing.T) {
		reg := registry.NewRegistry()

		registryRepo := new(MockRegistryRepository)
		uow := new(MockUoW)
		factory := new(MockSettlementUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RegistryRepository").Return(registryRepo)
		registryRepo.On("Get", ctx).Return(reg, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewSettleDueIncentivesCommandHandler(factory, nil)
		err := handler.Handle(ctx, commands.NewSettleDueIncentivesCommand())

		require.NoError(t, err)
		registryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
