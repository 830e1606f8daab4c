package commands

import (
	"context"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/ports"
)

// UnregisterCarrierCommandHandler removes a carrier from the membership set.
// Removal is permissive: in-flight orders and the carrier's ratings survive.
type UnregisterCarrierCommandHandler struct {
	uowFactory MembershipUoWFactory
	publisher  ports.EventPublisher
}

// NewUnregisterCarrierCommandHandler creates a handler for carrier removal.
// The publisher may be nil.
func NewUnregisterCarrierCommandHandler(
	uowFactory MembershipUoWFactory, publisher ports.EventPublisher,
) UnregisterCarrierCommandHandler {
	return UnregisterCarrierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the carrier removal command.
func (h *UnregisterCarrierCommandHandler) Handle(ctx context.Context, cmd UnregisterCarrierCommand) error {
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

	reg, err := uow.RegistryRepository().Get(ctx)
	if err != nil {
		return err
	}
	if err = reg.UnregisterCarrier(cmd.CarrierID()); err != nil {
		return err
	}

	if err = uow.RegistryRepository().Save(ctx, reg); err != nil {
		return err
	}

	evts := []events.Event{events.CarrierUnregistered{Carrier: cmd.CarrierID()}}
	if err = uow.AuditRepository().Append(ctx, evts); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishCommitted(ctx, h.publisher, evts)

	return nil
}
