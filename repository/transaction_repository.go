package repository

import (
	"context"
	"database/sql"
	"go-wallet-api/logger"
	"go-wallet-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for transaction database operations.
type ITransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *sql.Tx, transaction *model.Transaction) error
	GetTransactionsByWalletID(walletID uuid.UUID, skip, limit int) ([]*model.Transaction, error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// CreateTransaction appends one audit row inside the caller's open database
// transaction, so that it commits or rolls back together with the wallet
// balance update. The id is assigned here; created_at comes from the table
// default.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx *sql.Tx, transaction *model.Transaction) error {
	transaction.ID = uuid.New()

	log := logger.Log.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"wallet_id":      transaction.WalletID,
		"operation_type": transaction.OperationType,
		"amount":         transaction.Amount,
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions (id, wallet_id, operation_type, amount, previous_balance, new_balance)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := tx.QueryRowContext(ctx, query,
		transaction.ID,
		transaction.WalletID,
		transaction.OperationType,
		transaction.Amount,
		transaction.PreviousBalance,
		transaction.NewBalance,
	).Scan(&transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// GetTransactionsByWalletID retrieves a page of the wallet's history, newest
// first. Reads are unlocked: consistency is as of query time, which is
// acceptable for audit display.
func (r *TransactionRepository) GetTransactionsByWalletID(walletID uuid.UUID, skip, limit int) ([]*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"wallet_id": walletID,
		"skip":      skip,
		"limit":     limit,
	})
	log.Info("Executing query to get transactions by wallet ID")

	query := `
		SELECT id, wallet_id, operation_type, amount, previous_balance, new_balance, created_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.DB.Query(query, walletID, skip, limit)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transactions by wallet ID")
		return nil, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.OperationType, &t.Amount, &t.PreviousBalance, &t.NewBalance, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed while iterating transaction rows")
		return nil, err
	}

	return transactions, nil
}
