package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/neuraread/banking-backend/internal/bank/adapter/repo"
	"github.com/neuraread/banking-backend/internal/bank/api"
	"github.com/neuraread/banking-backend/internal/bank/service"
	"github.com/neuraread/banking-backend/internal/platform/database"
	"github.com/neuraread/banking-backend/internal/platform/logger"
	"github.com/neuraread/banking-backend/internal/platform/server"
)

func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "configs/config.yaml"
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}

	appLogger := logger.NewLogger(viper.GetString("server.mode"))
	defer appLogger.Sync()

	db, err := database.NewPostgresDB(
		viper.GetString("database.dsn"),
		viper.GetInt("database.max_idle_conns"),
		viper.GetInt("database.max_open_conns"),
	)
	if err != nil {
		appLogger.Fatal("database init failed", zap.Error(err))
	}

	txManager := repo.NewTxManager(db)
	accountRepo := repo.NewAccountRepo(db)
	postingRepo := repo.NewPostingRepo(db)
	userRepo := repo.NewUserRepo(db)

	ledgerSvc := service.NewLedgerService(txManager, accountRepo, postingRepo)
	accountSvc := service.NewAccountService(txManager, userRepo, accountRepo)
	historySvc := service.NewHistoryService(accountRepo, postingRepo)
	bankHandler := api.NewBankHandler(ledgerSvc, accountSvc, historySvc, appLogger)

	srv := server.NewServer(
		appLogger,
		viper.GetString("server.port"),
		viper.GetString("server.mode"),
		bankHandler,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Run()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server startup failed", zap.Error(err))
		}
	case sig := <-quit:
		appLogger.Info("shutdown signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
