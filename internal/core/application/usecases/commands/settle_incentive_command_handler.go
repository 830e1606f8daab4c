package commands

import (
	"context"

	"freightledger/internal/core/domain/services"
	"freightledger/internal/core/ports"
)

// SettleIncentiveCommandHandler runs one settlement step for one recipient.
// The Settled audit record carries the paid amount; an external payout step
// consumes it after the transaction commits.
type SettleIncentiveCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
}

// NewSettleIncentiveCommandHandler creates a handler for settlement operations.
// The publisher may be nil.
func NewSettleIncentiveCommandHandler(
	uowFactory SettlementUoWFactory, publisher ports.EventPublisher,
) SettleIncentiveCommandHandler {
	return SettleIncentiveCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the settlement command.
func (h *SettleIncentiveCommandHandler) Handle(ctx context.Context, cmd SettleIncentiveCommand) error {
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

	_, _, evts, err := services.NewTrackingCoordinator().Settle(reg, cmd.Recipient())
	if err != nil {
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
