package commands_test

import (
	"testing"
	"time"

	"freightledger/internal/core/application/usecases/commands"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/core/domain/model/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func buildPendingOrder(t *testing.T, shipper kernel.UUID, carrierParty kernel.UUID) *order.Order {
	t.Helper()
	originLeg, err := order.NewLeg(shipper, order.CodeInit, 0)
	require.NoError(t, err)
	carrierLeg, err := order.NewLeg(carrierParty, order.CodeComplete, 5)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), shipper, []order.Leg{originLeg, carrierLeg})
	require.NoError(t, err)
	return o
}

func TestSubmitOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("admits the order and publishes events after commit", func(t *testing.T) {
		shipper := kernel.NewUUID()
		firstCarrier, err := carrier.NewCarrier(kernel.NewUUID(), "Meridian Freight", kernel.NewUUID())
		require.NoError(t, err)

		testOrder := buildPendingOrder(t, shipper, firstCarrier.ID())
		reg := registry.NewRegistry()
		require.NoError(t, reg.RegisterCarrier(firstCarrier.ID()))

		submittedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		cmd, err := commands.NewSubmitOrderCommand(testOrder.ID(), shipper, submittedAt)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		carrierRepo := new(MockCarrierRepository)
		registryRepo := new(MockRegistryRepository)
		auditRepo := new(MockAuditRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)
		publisher := new(capturingPublisher)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("CarrierRepository").Return(carrierRepo)
		uow.On("RegistryRepository").Return(registryRepo)
		uow.On("AuditRepository").Return(auditRepo)
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		registryRepo.On("Get", ctx).Return(reg, nil).Once()
		carrierRepo.On("Get", ctx, firstCarrier.ID()).Return(firstCarrier, nil).Once()
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
		carrierRepo.On("Update", ctx, firstCarrier).Return(nil).Once()
		registryRepo.On("Save", ctx, reg).Return(nil).Once()
		auditRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewSubmitOrderCommandHandler(factory, publisher)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusInTransit, testOrder.Status())
		assert.Equal(t, int64(1), testOrder.TrackingID())
		assert.True(t, firstCarrier.HoldsOrder(testOrder.ID()))

		originLeg, err := testOrder.Leg(0)
		require.NoError(t, err)
		assert.Equal(t, submittedAt, originLeg.CompletedAt(), "Submission must carry the caller-supplied time")

		require.Len(t, publisher.published, 1)
		require.Len(t, publisher.published[0], 2)
		uow.AssertExpectations(t)
	})

	t.Run("unregistered carrier rejects admission before any save", func(t *testing.T) {
		shipper := kernel.NewUUID()
		firstCarrier, err := carrier.NewCarrier(kernel.NewUUID(), "Meridian Freight", kernel.NewUUID())
		require.NoError(t, err)

		testOrder := buildPendingOrder(t, shipper, firstCarrier.ID())
		reg := registry.NewRegistry()

		cmd, err := commands.NewSubmitOrderCommand(testOrder.ID(), shipper, time.Time{})
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		carrierRepo := new(MockCarrierRepository)
		registryRepo := new(MockRegistryRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("CarrierRepository").Return(carrierRepo)
		uow.On("RegistryRepository").Return(registryRepo)
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
		registryRepo.On("Get", ctx).Return(reg, nil).Once()
		carrierRepo.On("Get", ctx, firstCarrier.ID()).Return(firstCarrier, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewSubmitOrderCommandHandler(factory, nil)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, registry.ErrCarrierNotRegistered)
		assert.Equal(t, order.StatusPending, testOrder.Status())
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		registryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
