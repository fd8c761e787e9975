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

	"github.com/avelins/tapcore/internal/bootstrap"
	"github.com/avelins/tapcore/internal/clock"
	"github.com/avelins/tapcore/internal/config"
	"github.com/avelins/tapcore/internal/database"
	"github.com/avelins/tapcore/internal/ledger"
	"github.com/avelins/tapcore/internal/logger"
	"github.com/avelins/tapcore/internal/server"
	"github.com/avelins/tapcore/internal/session"
	"github.com/avelins/tapcore/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo, dbPool, err := bootstrap.InitializeSessionStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	if dbPool != nil {
		defer dbPool.Close()
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		logger.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		logger.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	ledgerClient := ledger.NewClient(cfg.LedgerBaseURL, cfg.LedgerToken, cfg.LedgerTimeout)

	sessionService := session.NewService(
		sessionRepo,
		ledgerClient,
		clock.RealClock{},
		publisher,
		cfg.SessionCacheSize,
		cfg.SessionCacheTTL,
	)

	pool := worker.NewPool(worker.DefaultPoolWorkers, worker.DefaultPoolQueueSize)
	pool.Start()

	scheduler := worker.NewScheduler(sessionService, pool, worker.DefaultSweepTick)
	scheduler.Start()

	// A typed-nil *pgxpool.Pool would defeat the nil check in the
	// readiness handler; only wrap it when a real pool exists.
	var poolForReadiness database.Pool
	if dbPool != nil {
		poolForReadiness = dbPool
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, poolForReadiness, sessionService)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("Server failed", "error", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:         srv,
		Scheduler:      scheduler,
		WorkerPool:     pool,
		SessionService: sessionService,
	})
}
