// Package internal wires configuration, storage, background jobs, and the
// HTTP server into one application lifecycle.
package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"linkhub/internal/config"
	"linkhub/internal/database"
	"linkhub/internal/jobs"
	"linkhub/internal/logging"
	"linkhub/internal/pkg/visitor"
)

// Application owns every long-lived component. Construction opens the
// database; Start and Shutdown bracket the serving lifetime.
type Application struct {
	cfg       *config.Config
	logger    *slog.Logger
	dbManager *database.DBManager
	scheduler *jobs.Scheduler
	server    *fiber.App
}

// NewApp builds the application from the ambient configuration.
func NewApp() (*Application, error) {
	return NewAppWithConfig(config.GetConfig())
}

// NewAppWithConfig builds the application with an explicit config, which
// tests use to point at throwaway databases.
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Geo resolution degrades to Unknown when the database file is absent.
	visitor.InitGeoDB()

	server := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})
	server.Use(recover.New())

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		dbManager: dbManager,
		scheduler: jobs.NewScheduler(dbManager, logger),
		server:    server,
	}
	MountRoutes(server, dbManager.GetConnection(), logger, cfg)

	return app, nil
}

// DBManager exposes the storage handle for migrations and tests.
func (a *Application) DBManager() *database.DBManager {
	return a.dbManager
}

// Server exposes the fiber app for in-process request tests.
func (a *Application) Server() *fiber.App {
	return a.server
}

// Logger exposes the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// StartAsync launches the background scheduler and the HTTP listener. Listen
// errors after a successful bind are logged rather than returned, since they
// arrive on the serving goroutine.
func (a *Application) StartAsync() error {
	if err := a.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	go func() {
		addr := ":" + a.cfg.AppPort
		a.logger.Info("Starting HTTP server", slog.String("addr", addr))
		if err := a.server.Listen(addr); err != nil {
			a.logger.Error("HTTP server stopped", slog.Any("error", err))
		}
	}()

	return nil
}

// Shutdown stops the scheduler, drains in-flight requests, and closes the
// database, in that order.
func (a *Application) Shutdown(ctx context.Context) error {
	a.scheduler.Stop()

	if err := a.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := a.dbManager.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
