// router/router_test.go
package router

import (
	"database/sql"
	"encoding/json"
	"go-wallet-api/handler"
	"go-wallet-api/logger"
	"go-wallet-api/model"
	"go-wallet-api/repository"
	"go-wallet-api/service"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// newTestServer wires the real handler, service and repositories over a
// sqlmock-backed database, so requests exercise the full stack without a
// running Postgres.
func newTestServer(t *testing.T) (http.Handler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	walletRepo := repository.NewWalletRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	walletService := service.NewWalletService(db, walletRepo, transactionRepo, nil, 0, nil)
	walletHandler := handler.NewWalletHandler(walletService)
	healthHandler := handler.NewHealthHandler(db, nil)

	return NewRouter(walletHandler, healthHandler), dbMock, db
}

func TestRouter_CreateWallet(t *testing.T) {
	r, dbMock, db := newTestServer(t)
	defer db.Close()

	now := time.Now()
	dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO wallets (id) VALUES ($1) RETURNING balance, created_at, updated_at`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "created_at", "updated_at"}).AddRow("0.00", now, now))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wallets", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var wallet model.Wallet
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&wallet))
	assert.NotEqual(t, uuid.Nil, wallet.ID)
	assert.True(t, wallet.Balance.IsZero())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRouter_GetWallet(t *testing.T) {
	r, dbMock, db := newTestServer(t)
	defer db.Close()

	walletID := uuid.New()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`)).
			WithArgs(walletID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "created_at", "updated_at"}).
				AddRow(walletID.String(), "250.00", now, now))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+walletID.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var wallet model.Wallet
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&wallet))
		assert.Equal(t, walletID, wallet.ID)
		assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("250.00")))
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`)).
			WithArgs(walletID).
			WillReturnError(sql.ErrNoRows)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+walletID.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wallets/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRouter_PerformOperation(t *testing.T) {
	r, dbMock, db := newTestServer(t)
	defer db.Close()

	walletID := uuid.New()
	now := time.Now()
	operationURL := "/api/v1/wallets/" + walletID.String() + "/operation"

	lockedWalletRows := func(balance string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "balance", "created_at", "updated_at"}).
			AddRow(walletID.String(), balance, now, now)
	}

	t.Run("deposit success", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(walletID).
			WillReturnRows(lockedWalletRows("0.00"))
		dbMock.ExpectQuery(regexp.QuoteMeta(`UPDATE wallets SET balance = $1, updated_at = now()`)).
			WithArgs(sqlmock.AnyArg(), walletID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
		dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
			WithArgs(sqlmock.AnyArg(), walletID, model.OperationDeposit, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		dbMock.ExpectCommit()

		body := strings.NewReader(`{"operation_type": "DEPOSIT", "amount": 1000.00}`)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, operationURL, body))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp model.OperationResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, walletID, resp.WalletID)
		assert.True(t, resp.NewBalance.Equal(decimal.RequireFromString("1000.00")))
		assert.NotEqual(t, uuid.Nil, resp.TransactionID)
	})

	t.Run("insufficient funds rolls back", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(walletID).
			WillReturnRows(lockedWalletRows("500.00"))
		dbMock.ExpectRollback()

		body := strings.NewReader(`{"operation_type": "WITHDRAW", "amount": 600.00}`)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, operationURL, body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient funds")
	})

	t.Run("wallet not found", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(walletID).
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectRollback()

		body := strings.NewReader(`{"operation_type": "DEPOSIT", "amount": 100.00}`)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, operationURL, body))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown operation type is rejected before any query", func(t *testing.T) {
		body := strings.NewReader(`{"operation_type": "TRANSFER", "amount": 100.00}`)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, operationURL, body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive amount is rejected before any query", func(t *testing.T) {
		for _, amount := range []string{"0.00", "-5.00"} {
			body := strings.NewReader(`{"operation_type": "DEPOSIT", "amount": ` + amount + `}`)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, operationURL, body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("commit failure maps to conflict", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
			WithArgs(walletID).
			WillReturnRows(lockedWalletRows("100.00"))
		dbMock.ExpectQuery(regexp.QuoteMeta(`UPDATE wallets SET balance = $1, updated_at = now()`)).
			WithArgs(sqlmock.AnyArg(), walletID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
		dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
			WithArgs(sqlmock.AnyArg(), walletID, model.OperationDeposit, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		dbMock.ExpectCommit().WillReturnError(sql.ErrTxDone)

		body := strings.NewReader(`{"operation_type": "DEPOSIT", "amount": 10.00}`)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, operationURL, body))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRouter_ListTransactions(t *testing.T) {
	r, dbMock, db := newTestServer(t)
	defer db.Close()

	walletID := uuid.New()
	now := time.Now()
	historyURL := "/api/v1/wallets/" + walletID.String() + "/transactions"

	walletRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "balance", "created_at", "updated_at"}).
			AddRow(walletID.String(), "500.00", now, now)
	}

	t.Run("returns history newest first", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`)).
			WithArgs(walletID).
			WillReturnRows(walletRows())
		dbMock.ExpectQuery(`SELECT id, wallet_id, operation_type`).
			WithArgs(walletID, 0, 100).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_id", "operation_type", "amount", "previous_balance", "new_balance", "created_at"}).
				AddRow(uuid.New().String(), walletID.String(), model.OperationWithdraw, "500.00", "1000.00", "500.00", now).
				AddRow(uuid.New().String(), walletID.String(), model.OperationDeposit, "1000.00", "0.00", "1000.00", now.Add(-time.Minute)))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, historyURL, nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var transactions []model.Transaction
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&transactions))
		assert.Len(t, transactions, 2)
		assert.Equal(t, model.OperationWithdraw, transactions[0].OperationType)
	})

	t.Run("custom pagination is forwarded", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`)).
			WithArgs(walletID).
			WillReturnRows(walletRows())
		dbMock.ExpectQuery(`SELECT id, wallet_id, operation_type`).
			WithArgs(walletID, 5, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_id", "operation_type", "amount", "previous_balance", "new_balance", "created_at"}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, historyURL+"?skip=5&limit=10", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("negative pagination is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, historyURL+"?skip=-1", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, balance, created_at, updated_at FROM wallets WHERE id = $1`)).
			WithArgs(walletID).
			WillReturnError(sql.ErrNoRows)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, historyURL, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRouter_Health(t *testing.T) {
	r, _, db := newTestServer(t)
	defer db.Close()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "healthy", status["status"])
	assert.Equal(t, "disabled", status["redis"])
}
