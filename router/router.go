package router

import (
	"go-wallet-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(walletHandler *handler.WalletHandler, healthHandler *handler.HealthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/wallets", handler.ErrorHandlingMiddleware(walletHandler.CreateWallet))
	mux.Handle("GET /api/v1/wallets/{walletId}", handler.ErrorHandlingMiddleware(walletHandler.GetWallet))
	mux.Handle("POST /api/v1/wallets/{walletId}/operation", handler.ErrorHandlingMiddleware(walletHandler.PerformOperation))
	mux.Handle("GET /api/v1/wallets/{walletId}/transactions", handler.ErrorHandlingMiddleware(walletHandler.ListTransactions))

	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
