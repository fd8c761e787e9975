package bootstrap

import (
	"context"

	"github.com/avelins/tapcore/internal/logger"
	"github.com/avelins/tapcore/internal/server"
	"github.com/avelins/tapcore/internal/session"
	"github.com/avelins/tapcore/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server         *server.Server
	Scheduler      *worker.Scheduler
	WorkerPool     *worker.Pool
	SessionService session.Service
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop producing sweep jobs)
// 3. Worker pool (drain queued sweeps)
// 4. Session service (flush every live session to the ledger and store)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		logger.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		if err := components.Scheduler.Shutdown(ctx); err != nil {
			logger.Error(LogMsgSchedulerShutdownFailed, "error", err)
		}
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if err := components.SessionService.Shutdown(ctx); err != nil {
		logger.Error(LogMsgSessionShutdownFailed, "error", err)
	}

	logger.Info(LogMsgServerStopped)
}
