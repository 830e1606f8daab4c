package queries

import (
	"errors"

	"freightledger/internal/core/domain/model/kernel"
	"freightledger/internal/pkg/guard"
)

var ErrGetRecipientBalancesQueryIsNotConstructed = errors.New(
	"GetRecipientBalancesQuery must be created via NewGetRecipientBalancesQuery constructor",
)

// GetRecipientBalancesQuery retrieves every recipient with an outstanding
// incentive balance: the running accrued total and the amount staged for the
// next settlement step.
type GetRecipientBalancesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetRecipientBalancesQuery creates a query to retrieve all open balances.
func NewGetRecipientBalancesQuery() GetRecipientBalancesQuery {
	return GetRecipientBalancesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRecipientBalancesQuery) Validate() error {
	return q.guard.Validate(ErrGetRecipientBalancesQueryIsNotConstructed)
}

// GetRecipientBalancesQueryResponse represents one recipient's balance in the
// read model.
type GetRecipientBalancesQueryResponse struct {
	Recipient         kernel.UUID
	AccruedTotal      int64
	PendingSettlement int64
}
