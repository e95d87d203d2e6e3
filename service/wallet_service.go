package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"go-wallet-api/events"
	"go-wallet-api/logger"
	"go-wallet-api/model"
	"go-wallet-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrInvalidOperation = errors.New("operation type must be DEPOSIT or WITHDRAW")
	ErrInvalidAmount    = errors.New("operation amount must be greater than zero")
	ErrOperationAborted = errors.New("operation aborted before commit, safe to retry")
	ErrOperationTimeout = errors.New("operation deadline exceeded")
	ErrStoreUnavailable = errors.New("durable store unavailable")
)

// WalletService owns the balance engine and the wallet lifecycle. The cache
// and the event publisher are optional collaborators: either may be nil and
// the service degrades to uncached reads and no events.
type WalletService struct {
	db              *sql.DB
	walletRepo      repository.IWalletRepository
	transactionRepo repository.ITransactionRepository
	cache           ICacheClient
	cacheTTL        time.Duration
	publisher       events.IPublisher
}

func NewWalletService(
	db *sql.DB,
	walletRepo repository.IWalletRepository,
	transactionRepo repository.ITransactionRepository,
	cache ICacheClient,
	cacheTTL time.Duration,
	publisher events.IPublisher,
) *WalletService {
	return &WalletService{
		db:              db,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		publisher:       publisher,
	}
}

// CreateNewWallet creates a wallet with a zero balance and a fresh id.
func (s *WalletService) CreateNewWallet() (*model.Wallet, error) {
	wallet := &model.Wallet{}
	if err := s.walletRepo.CreateWallet(wallet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return wallet, nil
}

// GetWalletByID returns a point-in-time view of the wallet, utilizing a
// cache-aside strategy when a cache client is configured.
func (s *WalletService) GetWalletByID(ctx context.Context, walletID uuid.UUID) (*model.Wallet, error) {
	cacheKey := walletCacheKey(walletID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var wallet model.Wallet
			if err := json.Unmarshal([]byte(cached), &wallet); err == nil {
				return &wallet, nil
			}
		}
	}

	wallet, err := s.walletRepo.GetWalletByID(walletID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(wallet); err == nil {
			s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return wallet, nil
}

// PerformOperation applies one DEPOSIT or WITHDRAW to the wallet as a single
// atomic unit of work:
//
//  1. validate the request before touching the store,
//  2. open a database transaction,
//  3. lock the wallet row with SELECT ... FOR UPDATE, serializing concurrent
//     operations on the same wallet while leaving other wallets untouched,
//  4. compute the new balance,
//  5. write the balance and append the audit transaction row,
//  6. commit.
//
// On any failure the transaction is rolled back and both tables keep their
// pre-operation state. Commit failures surface as ErrOperationAborted and are
// never retried here: retrying is the caller's decision, which keeps a single
// request from ever being applied twice.
func (s *WalletService) PerformOperation(ctx context.Context, walletID uuid.UUID, operationType string, amount decimal.Decimal) (*model.Wallet, *model.Transaction, error) {
	if operationType != model.OperationDeposit && operationType != model.OperationWithdraw {
		return nil, nil, ErrInvalidOperation
	}
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if timeoutErr := deadlineError(ctx); timeoutErr != nil {
			return nil, nil, timeoutErr
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	wallet, err := s.walletRepo.GetWalletForUpdate(ctx, tx, walletID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrWalletNotFound
		}
		if timeoutErr := deadlineError(ctx); timeoutErr != nil {
			return nil, nil, timeoutErr
		}
		return nil, nil, fmt.Errorf("could not read wallet for update: %w", err)
	}

	previousBalance := wallet.Balance
	newBalance, err := calculateNewBalance(walletID, previousBalance, operationType, amount)
	if err != nil {
		return nil, nil, err
	}

	wallet.Balance = newBalance
	if err := s.walletRepo.UpdateWalletBalance(ctx, tx, wallet); err != nil {
		if timeoutErr := deadlineError(ctx); timeoutErr != nil {
			return nil, nil, timeoutErr
		}
		return nil, nil, fmt.Errorf("could not update wallet balance: %w", err)
	}

	transaction := &model.Transaction{
		WalletID:        walletID,
		OperationType:   operationType,
		Amount:          amount,
		PreviousBalance: previousBalance,
		NewBalance:      newBalance,
	}
	if err := s.transactionRepo.CreateTransaction(ctx, tx, transaction); err != nil {
		if timeoutErr := deadlineError(ctx); timeoutErr != nil {
			return nil, nil, timeoutErr
		}
		return nil, nil, fmt.Errorf("could not create transaction record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if timeoutErr := deadlineError(ctx); timeoutErr != nil {
			return nil, nil, timeoutErr
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrOperationAborted, err)
	}

	s.invalidateWalletCache(walletID)
	s.publishOperationCompleted(transaction)

	return wallet, transaction, nil
}

// ListTransactionsForWallet retrieves a page of the wallet's operation
// history, newest first.
func (s *WalletService) ListTransactionsForWallet(ctx context.Context, walletID uuid.UUID, skip, limit int) ([]*model.Transaction, error) {
	if _, err := s.walletRepo.GetWalletByID(walletID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	return s.transactionRepo.GetTransactionsByWalletID(walletID, skip, limit)
}

func (s *WalletService) invalidateWalletCache(walletID uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Invalidation runs after commit and must not hold up the response.
	s.cache.Del(context.Background(), walletCacheKey(walletID))
}

func (s *WalletService) publishOperationCompleted(transaction *model.Transaction) {
	if s.publisher == nil {
		return
	}

	event := events.OperationCompleted{
		TransactionID: transaction.ID,
		WalletID:      transaction.WalletID,
		OperationType: transaction.OperationType,
		Amount:        transaction.Amount,
		NewBalance:    transaction.NewBalance,
		OccurredAt:    transaction.CreatedAt,
	}
	if err := s.publisher.Publish(context.Background(), transaction.WalletID.String(), event); err != nil {
		// Best effort: the ledger row already records the operation.
		logger.Log.WithFields(logrus.Fields{
			"wallet_id":      transaction.WalletID,
			"transaction_id": transaction.ID,
		}).WithError(err).Warn("Failed to publish operation completed event")
	}
}

func walletCacheKey(walletID uuid.UUID) string {
	return fmt.Sprintf("cache:wallet:%s", walletID)
}

// deadlineError reports whether the caller's deadline has elapsed, mapping it
// to the service's timeout error. The deferred rollback guarantees the unit
// of work is not left pending.
func deadlineError(ctx context.Context) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ErrOperationTimeout, ctxErr)
	}
	return nil
}
