package commands

// SettleDueIncentivesCommand represents a settlement sweep over every
// recipient with an outstanding balance. The periodic settlement job issues
// this command on each tick.
type SettleDueIncentivesCommand struct{}

// NewSettleDueIncentivesCommand creates a settlement sweep command.
func NewSettleDueIncentivesCommand() SettleDueIncentivesCommand {
	return SettleDueIncentivesCommand{}
}

// Validate always succeeds; the sweep command carries no parameters.
func (c SettleDueIncentivesCommand) Validate() error {
	return nil
}
