package repository

import (
	"context"
	"database/sql"
	"go-wallet-api/logger"
	"go-wallet-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IWalletRepository defines the contract for wallet database operations.
// GetWalletForUpdate and UpdateWalletBalance operate on a row held under an
// exclusive lock and are therefore scoped to an open *sql.Tx.
type IWalletRepository interface {
	CreateWallet(wallet *model.Wallet) error
	GetWalletByID(id uuid.UUID) (*model.Wallet, error)
	GetWalletForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Wallet, error)
	UpdateWalletBalance(ctx context.Context, tx *sql.Tx, wallet *model.Wallet) error
}

// WalletRepository implements IWalletRepository over Postgres.
type WalletRepository struct {
	DB *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{DB: db}
}

// CreateWallet inserts a new wallet row. The id is assigned here; the balance
// and both timestamps come back from the table defaults.
func (r *WalletRepository) CreateWallet(wallet *model.Wallet) error {
	wallet.ID = uuid.New()

	log := logger.Log.WithField("wallet_id", wallet.ID)
	log.Info("Executing query to create a new wallet")

	query := `INSERT INTO wallets (id) VALUES ($1) RETURNING balance, created_at, updated_at`
	err := r.DB.QueryRow(query, wallet.ID).Scan(&wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create wallet query")
		return err
	}
	return nil
}

// GetWalletByID retrieves a wallet without locking it. Used for point-in-time
// balance reads only; the balance engine must use GetWalletForUpdate instead.
func (r *WalletRepository) GetWalletByID(id uuid.UUID) (*model.Wallet, error) {
	log := logger.Log.WithField("wallet_id", id)
	log.Info("Executing query to get wallet by ID")

	wallet := &model.Wallet{}
	query := `SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&wallet.ID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get wallet query")
		}
		return nil, err
	}
	return wallet, nil
}

// GetWalletForUpdate acquires the exclusive row lock on the wallet for the
// duration of tx. Concurrent callers for the same wallet block here until the
// holding transaction commits or rolls back.
func (r *WalletRepository) GetWalletForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Wallet, error) {
	log := logger.Log.WithField("wallet_id", id)
	log.Info("Executing query to get wallet for update")

	wallet := &model.Wallet{}
	query := `SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1 FOR UPDATE`
	err := tx.QueryRowContext(ctx, query, id).Scan(&wallet.ID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Wallet not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get wallet for update query")
		}
		return nil, err
	}
	return wallet, nil
}

// UpdateWalletBalance writes the new balance and refreshes updated_at. Must
// run inside the transaction holding the lock from GetWalletForUpdate.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, tx *sql.Tx, wallet *model.Wallet) error {
	log := logger.Log.WithFields(logrus.Fields{
		"wallet_id":   wallet.ID,
		"new_balance": wallet.Balance,
	})
	log.Info("Executing query to update wallet balance")

	query := `UPDATE wallets SET balance = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`
	err := tx.QueryRowContext(ctx, query, wallet.Balance, wallet.ID).Scan(&wallet.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute update wallet balance query")
		return err
	}
	return nil
}
