package commands

import (
	"context"
)

// LaunchLegCommandHandler records a carrier's acceptance of an itinerary leg.
// Launching is idempotent; reporting a leg that was never launched is rejected
// by the tracking protocol.
type LaunchLegCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewLaunchLegCommandHandler creates a handler for leg acceptance operations.
func NewLaunchLegCommandHandler(uowFactory CarrierUoWFactory) LaunchLegCommandHandler {
	return LaunchLegCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the leg acceptance command.
func (h *LaunchLegCommandHandler) Handle(ctx context.Context, cmd LaunchLegCommand) error {
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

	carrierRepo := uow.CarrierRepository()

	aggregate, err := carrierRepo.Get(ctx, cmd.CarrierID())
	if err != nil {
		return err
	}

	if err = aggregate.Launch(cmd.OrderID(), cmd.LegIndex()); err != nil {
		return err
	}

	if err = carrierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
