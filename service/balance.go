// file: service/balance.go

package service

import (
	"fmt"
	"go-wallet-api/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsufficientFundsError is returned when a withdrawal exceeds the current
// balance. It carries both sides of the comparison so the caller can report
// them without a second read.
type InsufficientFundsError struct {
	WalletID        uuid.UUID
	CurrentBalance  decimal.Decimal
	RequestedAmount decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on wallet %s: current balance %s, requested %s",
		e.WalletID, e.CurrentBalance.StringFixed(2), e.RequestedAmount.StringFixed(2))
}

// calculateNewBalance applies one operation to the current balance. It is
// pure: validation failures are reported as errors and nothing is written
// anywhere. The caller has already checked that amount is positive.
func calculateNewBalance(walletID uuid.UUID, currentBalance decimal.Decimal, operationType string, amount decimal.Decimal) (decimal.Decimal, error) {
	switch operationType {
	case model.OperationDeposit:
		return currentBalance.Add(amount), nil
	case model.OperationWithdraw:
		if currentBalance.LessThan(amount) {
			return decimal.Decimal{}, &InsufficientFundsError{
				WalletID:        walletID,
				CurrentBalance:  currentBalance,
				RequestedAmount: amount,
			}
		}
		return currentBalance.Sub(amount), nil
	default:
		return decimal.Decimal{}, ErrInvalidOperation
	}
}
