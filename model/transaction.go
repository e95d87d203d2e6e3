package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operation types recorded in the transactions table. The table carries a
// CHECK constraint restricting the column to these two values.
const (
	OperationDeposit  = "DEPOSIT"
	OperationWithdraw = "WITHDRAW"
)

// Transaction is one immutable audit record of a balance-changing operation.
// Rows are written exactly once, in the same database transaction as the
// wallet balance update, and are never modified afterwards.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	OperationType   string          `json:"operation_type"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	CreatedAt       time.Time       `json:"created_at"`
}
