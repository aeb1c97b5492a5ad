package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/zancompute/zanconfig/internal/console/http"
	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/internal/console/store"
	"github.com/zancompute/zanconfig/internal/console/store/drivers/sqlite"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the console with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	keys     *Keys
	api      *zanapi.Client
	sessions *session.Manager

	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "zanconfig",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize keys: %w", err)
	}
	app.keys = keys

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the console's HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("zanconfig console starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"api_base", app.cfg.APIBase,
		"secure_cookies", app.cfg.SecureCookies,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down zanconfig console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("zanconfig console stopped")
	return nil
}

// initDatabase opens the session store and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices wires the backend client, the session manager and the
// housekeeping worker
func (app *Application) initServices() {
	app.api = zanapi.NewClient(app.cfg.APIBase)

	app.sessions = session.NewManager(session.Config{
		Store:    app.db,
		Sealer:   app.keys.Sealer,
		Signer:   app.keys.Signer,
		Verifier: app.keys.Verifier,
		TTL:      app.cfg.SessionTTL,
		Secure:   app.cfg.SecureCookies,
	})

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	router, err := httpapi.NewRouter(httpapi.Options{
		CSRFKey:          app.keys.CSRFKey,
		Secure:           app.cfg.SecureCookies,
		DashboardRefresh: app.cfg.DashboardRefresh,
		BuildVersion:     BuildVersion,
	}, app.db, app.api, app.sessions, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
