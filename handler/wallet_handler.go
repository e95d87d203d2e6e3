package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"go-wallet-api/common"
	"go-wallet-api/logger"
	"go-wallet-api/model"
	"go-wallet-api/service"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 100
)

// WalletHandler holds dependencies for wallet-related handlers.
type WalletHandler struct {
	service *service.WalletService
}

// NewWalletHandler creates a new WalletHandler with its dependencies.
func NewWalletHandler(s *service.WalletService) *WalletHandler {
	return &WalletHandler{service: s}
}

// CreateWallet godoc
// @Summary      Create a new wallet
// @Description  Creates a wallet with a zero balance and a freshly assigned id.
// @Tags         wallets
// @Produce      json
// @Success      201  {object}  model.Wallet
// @Failure      503  {object}  common.AppError "Durable store unavailable"
// @Router       /api/v1/wallets [post]
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) *common.AppError {
	logger.Log.Info("Create wallet request received")

	wallet, err := h.service.CreateNewWallet()
	if err != nil {
		return common.NewAppError(http.StatusServiceUnavailable, "Could not create wallet", err)
	}

	logger.Log.WithField("wallet_id", wallet.ID).Info("Wallet created successfully")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(wallet)
	return nil
}

// GetWallet godoc
// @Summary      Get wallet balance
// @Description  Returns the current balance of the wallet. Reads may be served from a short-lived cache.
// @Tags         wallets
// @Produce      json
// @Param        walletId path string true "Wallet UUID"
// @Success      200  {object}  model.Wallet
// @Failure      400  {object}  common.AppError "Invalid wallet ID in URL path"
// @Failure      404  {object}  common.AppError "Wallet not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/wallets/{walletId} [get]
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) *common.AppError {
	walletID, appErr := walletIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	wallet, err := h.service.GetWalletByID(r.Context(), walletID)
	if err != nil {
		if errors.Is(err, service.ErrWalletNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve wallet", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(wallet)
	return nil
}

// PerformOperation godoc
// @Summary      Perform a wallet operation
// @Description  Applies a DEPOSIT or WITHDRAW to the wallet as a single atomic operation.
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        walletId path string true "Wallet UUID"
// @Param        operation body model.OperationRequest true "Operation to apply"
// @Success      200  {object}  model.OperationResponse
// @Failure      400  {object}  common.AppError "Invalid request, insufficient funds, or invalid operation"
// @Failure      404  {object}  common.AppError "Wallet not found"
// @Failure      409  {object}  common.AppError "Operation aborted at commit; safe to retry"
// @Failure      503  {object}  common.AppError "Durable store unavailable"
// @Failure      504  {object}  common.AppError "Operation deadline exceeded"
// @Router       /api/v1/wallets/{walletId}/operation [post]
func (h *WalletHandler) PerformOperation(w http.ResponseWriter, r *http.Request) *common.AppError {
	walletID, appErr := walletIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.OperationRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	log := logger.Log.WithFields(logrus.Fields{
		"wallet_id":      walletID,
		"operation_type": req.OperationType,
		"amount":         req.Amount,
	})
	log.Info("Wallet operation request received")

	wallet, transaction, err := h.service.PerformOperation(r.Context(), walletID, req.OperationType, req.Amount)
	if err != nil {
		// Map the service error taxonomy to HTTP status codes.
		var insufficientFunds *service.InsufficientFundsError
		switch {
		case errors.Is(err, service.ErrWalletNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.As(err, &insufficientFunds):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrInvalidOperation), errors.Is(err, service.ErrInvalidAmount):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrOperationTimeout):
			return common.NewAppError(http.StatusGatewayTimeout, err.Error(), err)
		case errors.Is(err, service.ErrOperationAborted):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		case errors.Is(err, service.ErrStoreUnavailable):
			return common.NewAppError(http.StatusServiceUnavailable, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process operation", err)
		}
	}

	log.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"new_balance":    wallet.Balance,
	}).Info("Wallet operation completed successfully")

	resp := model.OperationResponse{
		Success:       true,
		Message:       fmt.Sprintf("%s operation completed successfully", req.OperationType),
		WalletID:      walletID,
		NewBalance:    wallet.Balance,
		TransactionID: transaction.ID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
	return nil
}

// ListTransactions godoc
// @Summary      List wallet transaction history
// @Description  Returns the wallet's operations, newest first, paginated with skip and limit.
// @Tags         wallets
// @Produce      json
// @Param        walletId path string true "Wallet UUID"
// @Param        skip  query int false "Number of records to skip" default(0)
// @Param        limit query int false "Maximum number of records to return" default(100)
// @Success      200  {array}   model.Transaction
// @Failure      400  {object}  common.AppError "Invalid wallet ID or pagination parameters"
// @Failure      404  {object}  common.AppError "Wallet not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/v1/wallets/{walletId}/transactions [get]
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	walletID, appErr := walletIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	skip, appErr := queryInt(r, "skip", 0)
	if appErr != nil {
		return appErr
	}
	limit, appErr := queryInt(r, "limit", defaultHistoryLimit)
	if appErr != nil {
		return appErr
	}
	if skip < 0 || limit < 0 {
		return common.NewAppError(http.StatusBadRequest, "skip and limit must not be negative", nil)
	}

	transactions, err := h.service.ListTransactionsForWallet(r.Context(), walletID, skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrWalletNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transactions", err)
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transactions)
	return nil
}

func walletIDFromPath(r *http.Request) (uuid.UUID, *common.AppError) {
	walletID, err := uuid.Parse(r.PathValue("walletId"))
	if err != nil {
		return uuid.Nil, common.NewAppError(http.StatusBadRequest, "Invalid wallet ID in URL path", err)
	}
	return walletID, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, *common.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid %s query parameter", name), err)
	}
	return value, nil
}
