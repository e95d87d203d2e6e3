// file: model/request.go

package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationRequest defines the payload for a balance-changing operation.
// The oneof tag rejects unknown operation types at the entry point; amount
// positivity is re-checked by the service before any database access.
type OperationRequest struct {
	OperationType string          `json:"operation_type" validate:"required,oneof=DEPOSIT WITHDRAW"`
	Amount        decimal.Decimal `json:"amount"`
}

// OperationResponse is returned after a successfully committed operation.
type OperationResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	WalletID      uuid.UUID       `json:"wallet_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	TransactionID uuid.UUID       `json:"transaction_id"`
}
