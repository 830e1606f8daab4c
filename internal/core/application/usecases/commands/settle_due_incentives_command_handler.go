package commands

import (
	"context"

	"freightledger/internal/core/domain/events"
	"freightledger/internal/core/domain/services"
	"freightledger/internal/core/ports"
)

// SettleDueIncentivesCommandHandler sweeps every recipient with an
// outstanding balance through one settlement step. One sweep stages newly
// accrued amounts; the next sweep pays them out.
type SettleDueIncentivesCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
}

// NewSettleDueIncentivesCommandHandler creates a handler for settlement sweeps.
// The publisher may be nil.
func NewSettleDueIncentivesCommandHandler(
	uowFactory SettlementUoWFactory, publisher ports.EventPublisher,
) SettleDueIncentivesCommandHandler {
	return SettleDueIncentivesCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the settlement sweep command.
func (h *SettleDueIncentivesCommandHandler) Handle(ctx context.Context, cmd SettleDueIncentivesCommand) error {
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

	registryRepo := uow.RegistryRepository()

	reg, err := registryRepo.Get(ctx)
	if err != nil {
		return err
	}

	coordinator := services.NewTrackingCoordinator()
	var evts []events.Event

	// Recipients is snapshotted up front: a recipient settled down to zero
	// leaves the set mid-sweep.
	for _, recipient := range reg.Recipients() {
		_, _, stepEvents, err := coordinator.Settle(reg, recipient)
		if err != nil {
			return err
		}
		evts = append(evts, stepEvents...)
	}

	if len(evts) == 0 {
		// Nothing outstanding; the deferred rollback ends the transaction.
		return nil
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
