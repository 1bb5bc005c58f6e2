package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SpacWatch/internal/domain/models"
	"SpacWatch/internal/domain/repository"
	"SpacWatch/internal/handler/ws"
	"SpacWatch/internal/usecase"
	"SpacWatch/pkg/config"
	xhttp "SpacWatch/pkg/http"
	applogger "SpacWatch/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	orch       *usecase.Orchestrator
	hub        *ws.Hub
	sink       repository.AlertSink
	handlers   []xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	orch *usecase.Orchestrator,
	hub *ws.Hub,
	sink repository.AlertSink,
	handlers []xhttp.Handler,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		orch:     orch,
		hub:      hub,
		sink:     sink,
		handlers: handlers,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handlers,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.SlowThreshold),
	)

	// Warm the alerts panel and launch the periodic refresh loop.
	a.orch.Start(ctx)
	a.orch.RefreshAlerts(models.DateRange{})

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("dashboard started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("gateway", a.cfg.Gateway.BaseURL))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.orch.Stop()
	a.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			a.log.Warn("alert sink close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
