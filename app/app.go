// File: app/app.go
package app

import (
	"context"
	"go-wallet-api/config"
	"go-wallet-api/db"
	"go-wallet-api/events"
	"go-wallet-api/handler"
	"go-wallet-api/logger"
	"go-wallet-api/repository"
	"go-wallet-api/router"
	"go-wallet-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	// The cache is advisory: when Redis is down the service keeps running
	// with uncached reads.
	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.WithError(err).Warn("Redis unavailable, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Event publishing is optional and disabled unless brokers are configured.
	var publisher events.IPublisher
	if brokers := config.AppConfig.Kafka.Brokers; len(brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(brokers, config.AppConfig.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Log.WithField("topic", config.AppConfig.Kafka.Topic).Info("Kafka event publishing enabled")
	}

	// --- Wiring All Layers Together ---
	walletRepo := repository.NewWalletRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	var cache service.ICacheClient
	if redisClient != nil {
		cache = redisClient
	}
	cacheTTL := time.Duration(config.AppConfig.Redis.CacheTTLSeconds) * time.Second

	walletService := service.NewWalletService(database, walletRepo, transactionRepo, cache, cacheTTL, publisher)
	walletHandler := handler.NewWalletHandler(walletService)
	healthHandler := handler.NewHealthHandler(database, redisClient)

	r := router.NewRouter(walletHandler, healthHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
