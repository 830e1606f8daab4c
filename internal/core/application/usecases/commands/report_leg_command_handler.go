package commands

import (
	"context"
	"time"

	"freightledger/internal/core/domain/model/carrier"
	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/core/domain/model/order"
	"freightledger/internal/core/domain/services"
	"freightledger/internal/core/ports"
	"freightledger/internal/pkg/errs"
)

// ReportLegCommandHandler processes a carrier's leg report and runs the
// follow-on tracking protocol: a handover to the next carrier, or on the last
// leg the order's completion with its rating and incentive effects. All
// touched aggregates are loaded, mutated and saved within one transaction.
type ReportLegCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewReportLegCommandHandler creates a handler for leg report operations.
// The publisher receives the produced events after the transaction commits
// and may be nil.
func NewReportLegCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ReportLegCommandHandler {
	return ReportLegCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle processes the leg report command.
func (h *ReportLegCommandHandler) Handle(ctx context.Context, cmd ReportLegCommand) error {
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

	carriers, err := carrierRepo.GetAllByIDs(ctx, carrierParties(aggregate.Legs()))
	if err != nil {
		return err
	}
	carriersByParty := make(map[kernel.UUID]*carrier.Carrier, len(carriers))
	for _, c := range carriers {
		carriersByParty[c.ID()] = c
	}

	reporting, ok := carriersByParty[cmd.CarrierID()]
	if !ok {
		return errs.NewObjectNotFoundError("carrier", cmd.CarrierID().String())
	}

	at := cmd.At()
	if at.IsZero() {
		at = h.now()
	}

	evts, err := services.NewTrackingCoordinator().ReportLeg(
		aggregate, reg, reporting, carriersByParty, cmd.LegIndex(), at, cmd.Code(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	for _, c := range carriers {
		if err = carrierRepo.Update(ctx, c); err != nil {
			return err
		}
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

// carrierParties collects the distinct carrier identities of an itinerary,
// skipping the shipper's origin leg.
func carrierParties(legs []order.Leg) []kernel.UUID {
	seen := make(map[kernel.UUID]bool, len(legs))
	out := make([]kernel.UUID, 0, len(legs))
	for i := 1; i < len(legs); i++ {
		party := legs[i].Party()
		if seen[party] {
			continue
		}
		seen[party] = true
		out = append(out, party)
	}
	return out
}
