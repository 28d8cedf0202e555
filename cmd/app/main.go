package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/agrosight/agrosight/internal/agmarknet"
	"github.com/agrosight/agrosight/internal/config"
	"github.com/agrosight/agrosight/internal/database"
	"github.com/agrosight/agrosight/internal/database/postgres"
	"github.com/agrosight/agrosight/internal/event"
	"github.com/agrosight/agrosight/internal/market"
	"github.com/agrosight/agrosight/internal/metrics"
	"github.com/agrosight/agrosight/internal/server"
	"github.com/agrosight/agrosight/internal/worker"
	"github.com/agrosight/agrosight/internal/yield"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx := context.Background()

	dbPool, err := database.NewPool(
		cfg.GetDBConnString(),
		cfg.DBMaxConns,
		time.Duration(cfg.DBMaxIdleMinutes)*time.Minute,
		time.Duration(cfg.DBMaxLifeMinutes)*time.Minute,
	)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.InitSchema(ctx, dbPool); err != nil {
		slog.Error("Schema initialization failed", "error", err)
		os.Exit(1)
	}

	// Reference tables are loaded once at startup and immutable afterwards.
	commodityTable, err := yield.LoadCommodityTable(filepath.Join(cfg.ConfigsDir, "commodities.json"))
	if err != nil {
		slog.Error("Failed to load commodity table", "error", err)
		os.Exit(1)
	}
	slog.Info("Commodity table loaded", "commodities", commodityTable.Size())

	mspTable, err := market.LoadMspTable(filepath.Join(cfg.ConfigsDir, "msp.json"))
	if err != nil {
		slog.Error("Failed to load MSP table", "error", err)
		os.Exit(1)
	}
	slog.Info("MSP table loaded", "commodities", mspTable.Size())

	priceClient := agmarknet.NewClient(
		cfg.PriceFeedBaseURL,
		cfg.PriceFeedTimeout,
		cfg.PriceFeedRetries,
		cfg.PriceCacheSize,
		cfg.PriceCacheTTL,
	)

	eventBus := event.NewMemoryBus()
	if err := metrics.NewEventMetricsCollector().Register(eventBus); err != nil {
		slog.Error("Failed to register event metrics collector", "error", err)
		os.Exit(1)
	}

	yieldRepo := postgres.NewYieldRepository(dbPool)
	priceRepo := postgres.NewPriceRepository(dbPool)

	yieldService := yield.NewService(yieldRepo, commodityTable, priceClient, eventBus, cfg.PriceFeedTimeout)
	marketService := market.NewService(priceClient, priceRepo, mspTable, eventBus, cfg.PriceFeedTimeout, cfg.DefaultTrendDays)

	notifier := worker.NewDeviationNotifier(yieldService, 0)
	notifier.Start()

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, dbPool, yieldService, marketService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	if err := notifier.Shutdown(shutdownCtx); err != nil {
		slog.Error("Deviation notifier forced shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
