// Package app wires configuration, logging, storage and the service layer
// into one lifecycle shared by the interactive menu and the subcommands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmynk/roster/internal/config"
	"github.com/mmynk/roster/internal/console"
	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/middleware"
	"github.com/mmynk/roster/internal/service"
	"github.com/mmynk/roster/internal/storage/sqlite"
	"github.com/mmynk/roster/pkg/logging"
)

type App struct {
	Config  *config.Config
	Service *service.EmployeeService
	Metrics *metrics.Metrics

	store     *sqlite.SQLiteStore
	intercept middleware.Interceptor
	closeLog  func() error
}

// New sets up logging, opens the database and builds the service.
func New(cfg *config.Config) (*App, error) {
	closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	return &App{
		Config:    cfg,
		Service:   service.NewEmployeeService(store, m),
		Metrics:   m,
		store:     store,
		intercept: middleware.Chain(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m)),
		closeLog:  closeLog,
	}, nil
}

// Do runs action through the logging and metrics interceptors.
func (a *App) Do(ctx context.Context, name string, action middleware.Action) error {
	return a.intercept(name, action)(ctx)
}

// Console returns the interactive menu bound to in and out.
func (a *App) Console(in io.Reader, out io.Writer) *console.Console {
	return console.New(a.Service, in, out, a.Config.CurrencySymbol, a.intercept)
}

// Close flushes metrics to the configured textfile and releases the database
// and log file. It keeps going after a failure and reports every error.
func (a *App) Close() error {
	var errs []error
	if a.Config.MetricsFile != "" {
		if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	if err := a.closeLog(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
	}
	return errors.Join(errs...)
}
