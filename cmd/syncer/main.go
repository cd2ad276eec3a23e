package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	syncapp "github.com/sominastock/ordersync/internal/application/ordersync"
	"github.com/sominastock/ordersync/internal/domain/ordersync"
	"github.com/sominastock/ordersync/internal/infrastructure/config"
	"github.com/sominastock/ordersync/internal/infrastructure/logger"
	"github.com/sominastock/ordersync/internal/infrastructure/mercadolibre"
	"github.com/sominastock/ordersync/internal/infrastructure/persistence"
	"github.com/sominastock/ordersync/internal/infrastructure/runlock"
	"github.com/sominastock/ordersync/internal/infrastructure/runlog"
	"github.com/sominastock/ordersync/internal/infrastructure/scheduler"
	"github.com/sominastock/ordersync/internal/infrastructure/woocommerce"
	"github.com/sominastock/ordersync/internal/interfaces/http/handler"
	"github.com/sominastock/ordersync/internal/interfaces/http/router"
)

func main() {
	var (
		loop  bool
		serve bool
	)
	flag.BoolVar(&loop, "loop", false, "run continuously on the configured interval instead of one shot")
	flag.BoolVar(&serve, "serve", false, "expose the admin HTTP surface (implies -loop)")
	flag.Parse()
	if serve {
		loop = true
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting order sync",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Bool("loop", loop),
		zap.Duration("lookback", cfg.Sync.Lookback))

	// Marketplace adapter
	mlConfig := mercadolibre.NewConfig(cfg.Marketplace.AccessToken, cfg.Marketplace.SellerID)
	if cfg.Marketplace.APIBaseURL != "" {
		mlConfig.APIBaseURL = cfg.Marketplace.APIBaseURL
	}
	if cfg.Marketplace.TimeoutSeconds > 0 {
		mlConfig.TimeoutSeconds = cfg.Marketplace.TimeoutSeconds
	}
	marketplace, err := mercadolibre.NewAdapter(mlConfig)
	if err != nil {
		log.Fatal("Failed to create marketplace adapter", zap.Error(err))
	}

	// Storefront adapter
	wcConfig := woocommerce.NewConfig(cfg.Storefront.ConsumerKey, cfg.Storefront.ConsumerSecret, cfg.Storefront.APIBaseURL)
	if cfg.Storefront.TimeoutSeconds > 0 {
		wcConfig.TimeoutSeconds = cfg.Storefront.TimeoutSeconds
	}
	storefront, err := woocommerce.NewAdapter(wcConfig)
	if err != nil {
		log.Fatal("Failed to create storefront adapter", zap.Error(err))
	}

	opts := make([]syncapp.OrchestratorOption, 0, 3)

	// Run log
	if cfg.Sync.RunLogPath != "" {
		sink, err := runlog.NewFileSink(cfg.Sync.RunLogPath)
		if err != nil {
			log.Fatal("Failed to open run log", zap.Error(err))
		}
		defer func() {
			if err := sink.Close(); err != nil {
				log.Error("Error closing run log", zap.Error(err))
			}
		}()
		opts = append(opts, syncapp.WithRunLog(sink))
	}

	// Processed-order ledger
	var ledger ordersync.SyncRecordRepository
	if cfg.Sync.LedgerEnabled {
		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to ledger database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		ledger = persistence.NewGormSyncRecordRepository(db.DB)
		opts = append(opts, syncapp.WithLedger(ledger))
		log.Info("Sync ledger enabled")
	}

	// Run lock
	if cfg.Sync.RunLockEnabled {
		lock, err := runlock.NewRedisRunLock(runlock.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Marketplace.SellerID, cfg.Sync.RunLockTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis for run lock", zap.Error(err))
		}
		defer func() {
			if err := lock.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		opts = append(opts, syncapp.WithRunLock(lock))
		log.Info("Run lock enabled")
	}

	orchestrator := syncapp.NewOrchestrator(
		marketplace,
		syncapp.NewAggregator(storefront, log),
		syncapp.NewSubmitter(storefront, log),
		cfg.Sync.Lookback,
		log,
		opts...,
	)

	if !loop {
		runOnce(orchestrator, log)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	trigger := scheduler.NewIntervalTrigger(cfg.Sync.Interval, scheduler.RunnerFunc(func(ctx context.Context) error {
		_, err := orchestrator.Run(ctx)
		return err
	}), log)
	if err := trigger.Start(ctx); err != nil {
		log.Fatal("Failed to start interval trigger", zap.Error(err))
	}

	var server *http.Server
	if serve {
		engine := router.New(handler.NewSyncHandler(orchestrator, ledger), log)
		server = &http.Server{
			Addr:    ":" + cfg.Admin.Port,
			Handler: engine,
		}
		go func() {
			log.Info("Admin server listening", zap.String("port", cfg.Admin.Port))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Admin server failed", zap.Error(err))
				stop()
			}
		}()
	}

	<-ctx.Done()
	log.Info("Shutting down")

	trigger.Stop()
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Admin server shutdown failed", zap.Error(err))
		}
	}
	log.Info("Shutdown complete")
}

// runOnce executes a single sync pass, matching the historical cron entry
func runOnce(orchestrator *syncapp.Orchestrator, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := orchestrator.Run(ctx)
	if err != nil {
		log.Error("Sync run failed", zap.Error(err))
		os.Exit(1)
	}

	if result.Submitted() {
		log.Info("Sync run complete",
			zap.Int("fetched", result.FetchedCount),
			zap.Int64("storefront_order_id", result.Submission.StorefrontOrderID))
	} else {
		log.Info("Sync run complete, nothing submitted",
			zap.Int("fetched", result.FetchedCount))
	}
}
