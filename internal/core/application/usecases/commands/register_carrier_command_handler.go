package commands

import (
	"context"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/ports"
)

// RegisterCarrierCommandHandler enrolls a carrier: it creates the carrier
// aggregate and registers it in the membership set within one transaction.
type RegisterCarrierCommandHandler struct {
	uowFactory MembershipUoWFactory
	publisher  ports.EventPublisher
}

// NewRegisterCarrierCommandHandler creates a handler for carrier enrollment.
// The publisher may be nil.
func NewRegisterCarrierCommandHandler(
	uowFactory MembershipUoWFactory, publisher ports.EventPublisher,
) RegisterCarrierCommandHandler {
	return RegisterCarrierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the carrier enrollment command.
func (h *RegisterCarrierCommandHandler) Handle(ctx context.Context, cmd RegisterCarrierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := carrier.NewCarrier(cmd.CarrierID(), cmd.Name(), cmd.PayoutRecipient())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reg, err := uow.RegistryRepository().Get(ctx)
	if err != nil {
		return err
	}
	if err = reg.RegisterCarrier(aggregate.ID()); err != nil {
		return err
	}

	if err = uow.CarrierRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.RegistryRepository().Save(ctx, reg); err != nil {
		return err
	}

	evts := []events.Event{events.CarrierRegistered{Carrier: aggregate.ID()}}
	if err = uow.AuditRepository().Append(ctx, evts); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishCommitted(ctx, h.publisher, evts)

	return nil
}
