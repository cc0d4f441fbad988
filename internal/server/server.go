// Package server wires the sampler, its observers and the HTTP API into
// one application.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kazakovdmitriy/go-eventmanager/internal/config"
	"github.com/kazakovdmitriy/go-eventmanager/internal/config/db"
	"github.com/kazakovdmitriy/go-eventmanager/internal/handler"
	"github.com/kazakovdmitriy/go-eventmanager/internal/observers"
	"github.com/kazakovdmitriy/go-eventmanager/internal/repository/dbstorage"
	"github.com/kazakovdmitriy/go-eventmanager/internal/retry"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler/provider"
	"go.uber.org/zap"
)

const (
	storeTimeout    = 3 * time.Second
	shutdownTimeout = 30 * time.Second
	minGzipSize     = 1024
)

type App struct {
	cfg       *config.Flags
	log       *zap.Logger
	sampler   *sampler.Sampler
	store     *dbstorage.EventStore
	retry     retry.Config
	resources *ResourceGroup

	activeRequests sync.WaitGroup
	shutdownCh     chan struct{}
	server         *http.Server
}

// NewApp builds the sampler and registers the observers enabled by cfg.
func NewApp(ctx context.Context, cfg *config.Flags, log *zap.Logger) (*App, error) {
	retryCfg, err := cfg.RetryConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid retry delays: %w", err)
	}

	providers := []sampler.Provider{
		provider.NewRuntimeProvider(),
		provider.NewSystemProvider(),
	}
	s, err := sampler.New(cfg.SamplerName, cfg.PollInterval, providers, log)
	if err != nil {
		return nil, fmt.Errorf("sampler initialization error: %w", err)
	}

	app := &App{
		cfg:        cfg,
		log:        log,
		sampler:    s,
		retry:      retryCfg,
		resources:  NewResourceGroup(log),
		shutdownCh: make(chan struct{}),
	}

	if err := app.registerObservers(ctx); err != nil {
		_ = app.resources.CloseAll()
		return nil, err
	}

	deps := handler.Deps{
		Sampler:   s,
		RateLimit: cfg.RateLimit,
	}
	if app.store != nil {
		deps.Health = app.store
		deps.History = app.store
	}

	app.server = &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: handler.SetupHandler(deps, &app.activeRequests, app.shutdownCh, log),
	}

	return app, nil
}

func (a *App) registerObservers(ctx context.Context) error {
	logObserver := observers.NewLogObserver(a.log)
	if err := a.register(logObserver); err != nil {
		return err
	}

	if a.cfg.FilePath != "" {
		fileObserver, err := observers.NewFileObserver(a.cfg.FilePath, a.log)
		if err != nil {
			return err
		}
		a.resources.Register(fileObserver)
		if err := a.register(fileObserver); err != nil {
			return err
		}
	}

	if a.cfg.WebhookURL != "" {
		webhook := observers.NewWebhookObserver(observers.WebhookConfig{
			URL:         a.cfg.WebhookURL,
			Key:         a.cfg.SecretKey,
			Workers:     a.cfg.RateLimit,
			MinGzipSize: minGzipSize,
			Retry:       a.retry,
		}, a.log)
		a.resources.Register(webhook)
		if err := a.register(webhook); err != nil {
			return err
		}
	}

	if a.cfg.DatabaseDSN != "" {
		a.initStore(ctx)
		if a.store != nil {
			if err := a.register(observers.NewStoreObserver(a.store, storeTimeout)); err != nil {
				return err
			}
		}
	}

	return nil
}

// register subscribes observer to both sampler events through its
// OnSample and OnStop methods.
func (a *App) register(observer any) error {
	if err := a.sampler.RegisterOnSample(observer, ""); err != nil {
		return fmt.Errorf("register %T: %w", observer, err)
	}
	if err := a.sampler.RegisterOnStop(observer, ""); err != nil {
		return fmt.Errorf("register %T: %w", observer, err)
	}
	return nil
}

func (a *App) initStore(ctx context.Context) {
	database := db.NewDatabase(ctx, a.cfg.DatabaseDSN, a.log)
	if !database.IsConnected() {
		a.log.Warn("events will not be stored")
		return
	}

	migrator := db.NewMigrator(a.cfg.DatabaseDSN, a.cfg.MigrationsPath, a.log)
	if err := migrator.Up(); err != nil {
		a.log.Error("migration failed", zap.Error(err))
	}

	a.store = dbstorage.NewEventStore(database.Pool, a.retry, a.log)
	a.resources.Register(a.store)
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.Serve(ctx)
}

// Serve starts sampling and the HTTP server and blocks until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	a.sampler.Start(ctx)

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("server starting", zap.String("addr", a.cfg.ServerAddr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("graceful shutdown initiated")
	case err := <-serveErr:
		a.log.Error("server failed", zap.Error(err))
		runErr = fmt.Errorf("server failed: %w", err)
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	close(a.shutdownCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server shutdown failed", zap.Error(err))
	}

	a.log.Info("waiting for active requests to complete...")
	waitDone := make(chan struct{})
	go func() {
		a.activeRequests.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		a.log.Info("all requests completed")
	case <-time.After(10 * time.Second):
		a.log.Warn("timeout waiting for requests")
	}

	if err := a.sampler.Stop("shutdown"); err != nil {
		a.log.Error("sampler stop failed", zap.Error(err))
	}

	if err := a.resources.CloseAll(); err != nil {
		a.log.Error("resource cleanup failed", zap.Error(err))
	}

	a.log.Info("server stopped gracefully")
}
