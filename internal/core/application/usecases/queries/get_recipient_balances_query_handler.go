package queries

import (
	"context"

	"freightledger/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecipientBalancesQueryHandler retrieves open incentive balances.
type GetRecipientBalancesQueryHandler struct {
	db *gorm.DB
}

// NewGetRecipientBalancesQueryHandler creates a handler for balance retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetRecipientBalancesQueryHandler(db *gorm.DB) GetRecipientBalancesQueryHandler {
	return GetRecipientBalancesQueryHandler{db: db}
}

// Handle executes the query to retrieve all open balances, oldest accrual first.
func (h GetRecipientBalancesQueryHandler) Handle(
	ctx context.Context,
	query GetRecipientBalancesQuery,
) ([]GetRecipientBalancesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	balances := make([]GetRecipientBalancesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.recipient,
			b.accrued_total,
			b.pending_settlement
		FROM registry_balances b
		LEFT JOIN registry_recipients r ON r.party = b.recipient
		ORDER BY r.position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var balance GetRecipientBalancesQueryResponse
		var recipient uuid.UUID

		err = rows.Scan(
			&recipient,
			&balance.AccruedTotal,
			&balance.PendingSettlement,
		)
		if err != nil {
			return nil, err
		}

		recipientID, idErr := kernel.UUIDFromBytes(recipient[:])
		if idErr != nil {
			return nil, idErr
		}
		balance.Recipient = recipientID
		balances = append(balances, balance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}
