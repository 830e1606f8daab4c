package commands_test

import (
	"testing"

	"freightledger/internal/core/application/usecases/commands"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLaunchLegCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		carrierID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		cmd, err := commands.NewLaunchLegCommand(carrierID, orderID, 2)

		require.NoError(t, err)
		assert.True(t, cmd.CarrierID().IsEqual(carrierID))
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, 2, cmd.LegIndex())
	})

	t.Run("leg index below 1", func(t *testing.T) {
		_, err := commands.NewLaunchLegCommand(kernel.NewUUID(), kernel.NewUUID(), 0)

		require.ErrorIs(t, err, commands.ErrLegIndexIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.LaunchLegCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrLaunchLegCommandIsNotConstructed)
	})
}

func TestLaunchLegCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("records the launch on the carrier", func(t *testing.T) {
		hauler, err := carrier.NewCarrier(kernel.NewUUID(), "Meridian Freight", kernel.NewUUID())
		require.NoError(t, err)
		orderID := kernel.NewUUID()

		cmd, err := commands.NewLaunchLegCommand(hauler.ID(), orderID, 1)
		require.NoError(t, err)

		carrierRepo := new(MockCarrierRepository)
		uow := new(MockUoW)
		factory := new(MockCarrierUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CarrierRepository").Return(carrierRepo).Once()
		carrierRepo.On("Get", ctx, hauler.ID()).Return(hauler, nil).Once()
		carrierRepo.On("Update", ctx, hauler).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewLaunchLegCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, hauler.IsLaunched(orderID, 1))
	})
}
