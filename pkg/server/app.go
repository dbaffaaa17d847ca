package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VolaEngine/internal/domain/repository"
	"VolaEngine/pkg/cache"
	"VolaEngine/pkg/config"
	xhttp "VolaEngine/pkg/http"
	applogger "VolaEngine/pkg/logger"
)

// App encapsulates the application lifecycle: it owns the HTTP server and
// the optional infrastructure clients, starts them, and tears everything
// down in order on SIGINT/SIGTERM.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	cache      cache.Service
	store      repository.AnalysisStore
	publisher  repository.Publisher
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. cache, store, and
// publisher may be nil when the corresponding feature is disabled.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	c cache.Service,
	store repository.AnalysisStore,
	publisher repository.Publisher,
	l *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		handler:   handler,
		cache:     c,
		store:     store,
		publisher: publisher,
		logger:    l,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops the HTTP server first so no new work arrives, then closes
// the infrastructure clients.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("store close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
