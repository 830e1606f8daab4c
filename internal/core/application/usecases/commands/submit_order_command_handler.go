package commands

import (
	"context"
	"time"

	"freightledger/internal/core/domain/services"
	"freightledger/internal/core/ports"
)

// SubmitOrderCommandHandler runs order admission: the registry validates the
// itinerary's carriers, the order moves to in-transit, a tracking id is
// assigned and the first carrier takes the order. Everything happens in one
// transaction; a rejected admission leaves no trace.
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// The publisher receives the produced events after the transaction commits
// and may be nil.
func NewSubmitOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle processes the order submission command.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	carrierRepo := uow.CarrierRepository()
	registryRepo := uow.RegistryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	reg, err := registryRepo.Get(ctx)
	if err != nil {
		return err
	}

	firstLeg, err := aggregate.Leg(1)
	if err != nil {
		return err
	}
	firstCarrier, err := carrierRepo.Get(ctx, firstLeg.Party())
	if err != nil {
		return err
	}

	at := cmd.At()
	if at.IsZero() {
		at = h.now()
	}

	evts, err := services.NewTrackingCoordinator().Submit(aggregate, reg, firstCarrier, cmd.Origin(), at)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = carrierRepo.Update(ctx, firstCarrier); err != nil {
		return err
	}
	if err = registryRepo.Save(ctx, reg); err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, evts); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishCommitted(ctx, h.publisher, evts)

	return nil
}
