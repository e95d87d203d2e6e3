package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationCompleted is published after a balance operation has committed.
// It mirrors the ledger row, not the request, so consumers see exactly what
// was recorded.
type OperationCompleted struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	WalletID      uuid.UUID       `json:"wallet_id"`
	OperationType string          `json:"operation_type"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// IPublisher defines the contract for publishing wallet events. Publishing is
// best-effort: the database commit is the source of truth and callers must
// not fail a committed operation on a publish error.
type IPublisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}
