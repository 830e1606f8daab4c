package jobs

import (
	"context"
	"log/slog"

	"freightledger/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SettlementSweepJob periodically settles outstanding incentive balances.
// Each run stages newly accrued amounts and pays out what the previous
// run staged, so money leaves the ledger at most one period after accrual.
type SettlementSweepJob struct {
	handler  commands.SettleDueIncentivesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSettlementSweepJob creates a sweep job running on the given cron schedule.
// The schedule uses the six-field form with a leading seconds column.
func NewSettlementSweepJob(
	handler commands.SettleDueIncentivesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SettlementSweepJob {
	return &SettlementSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "settlement_sweep_job"),
	}
}

// Start begins the settlement sweep on its configured schedule.
func (j *SettlementSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSettleDueIncentivesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Settlement sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement sweep started", "schedule", j.schedule)
	return nil
}

// Stop stops the settlement sweep job.
func (j *SettlementSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement sweep stopped")
}
