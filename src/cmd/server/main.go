package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/adapter/http/controller"
	"github.com/api-sage/fx-transfer/src/internal/adapter/http/middleware"
	"github.com/api-sage/fx-transfer/src/internal/adapter/http/router"
	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/implementations"
	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/memory"
	"github.com/api-sage/fx-transfer/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fx-transfer/src/internal/config"
	"github.com/api-sage/fx-transfer/src/internal/logger"
	"github.com/api-sage/fx-transfer/src/internal/metrics"
	"github.com/api-sage/fx-transfer/src/internal/usecase/quotes"
	"github.com/api-sage/fx-transfer/src/internal/usecase/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.NewPrometheus("fx_transfer", registry)
	if err != nil {
		log.Fatalf("register metrics: %v", err)
	}

	var (
		quoteRepo   repo_interfaces.QuoteRepository
		accountRepo repo_interfaces.AccountRepository
	)
	if cfg.UsesDatabase() {
		db, err := implementations.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = implementations.RunMigrations(migrateCtx, db, cfg.MigrationsDir)
		cancel()
		if err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		quoteRepo = implementations.NewQuoteRepository(db)
		accountRepo = implementations.NewAccountRepository(db)
	} else {
		logger.Info("no database configured, using in-memory stores", nil)
		quoteRepo = memory.NewQuoteRepository(memory.SampleTable())
		accountRepo = memory.NewAccountRepository()
	}

	quoteSource := quotes.NewCachingSource(quoteRepo, cfg.QuoteCacheTTL, collector)

	rateService := services.NewRateService(quoteRepo, quoteSource, collector, cfg.ConversionPrecision)
	accountService := services.NewAccountService(accountRepo)
	transferService := services.NewTransferService(accountRepo, quoteSource, collector, cfg.ConversionPrecision)

	mux := router.New(
		controller.NewRateController(rateService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
		registry,
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey, cfg.ChannelKeyHash),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", err, nil)
		}
	}()

	logger.Info("server listening", logger.Fields{
		"addr":     cfg.HTTPAddr,
		"database": cfg.UsesDatabase(),
	})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve http: %v", err)
	}
	logger.Info("server stopped", nil)
}
