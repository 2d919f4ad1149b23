// Package di provides dependency injection configuration for the time tracker.
package di

import (
	"context"
	"io"
	"os"

	"github.com/samber/do/v2"

	"timetracker/internal/api"
	"timetracker/internal/config"
	"timetracker/internal/di/providers"
	"timetracker/internal/logging"
	"timetracker/internal/repository/sqlite"
	"timetracker/internal/services"
)

// NewContainer creates and configures the DI container with all providers.
// Log output goes to logOut, or stderr when nil.
func NewContainer(cfg *config.Config, logOut io.Writer) *do.RootScope {
	if logOut == nil {
		logOut = os.Stderr
	}
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.ProvideNamedValue[providers.LogWriter](injector, providers.LogWriterName, logOut)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideClock)

	// Database layer
	do.Provide(injector, providers.ProvideRepository)

	// Business services
	do.Provide(injector, providers.ProvideSettings)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideEntryService)
	do.Provide(injector, providers.ProvideTimelineService)
	do.Provide(injector, providers.ProvideDurationService)
	do.Provide(injector, providers.ProvideDirectoryService)
	do.Provide(injector, providers.ProvideSweeper)
	do.Provide(injector, providers.ProvideAPI)

	// Workers
	do.Provide(injector, providers.ProvideSweeperJob)

	return injector
}

// Runtime owns a container and exposes what the command line needs from it.
type Runtime struct {
	injector *do.RootScope
	log      *logging.Logger
	api      api.API
}

// NewRuntime builds the container and eagerly resolves the API so that
// configuration and database errors surface before any command runs.
func NewRuntime(cfg *config.Config, logOut io.Writer) (*Runtime, error) {
	injector := NewContainer(cfg, logOut)

	a, err := do.Invoke[api.API](injector)
	if err != nil {
		_ = injector.Shutdown()
		return nil, err
	}

	return &Runtime{
		injector: injector,
		log:      do.MustInvoke[*logging.Logger](injector),
		api:      a,
	}, nil
}

// API returns the API facade.
func (r *Runtime) API() api.API {
	return r.api
}

// StartScheduler starts the daily auto-completion job unless it is disabled.
func (r *Runtime) StartScheduler(ctx context.Context) error {
	cfg := do.MustInvoke[*config.Config](r.injector)
	if !cfg.Sweeper.Enabled {
		r.log.Info("auto-completion disabled")
		return nil
	}

	job, err := do.Invoke[*providers.SweeperJob](r.injector)
	if err != nil {
		return err
	}
	return job.Start(ctx)
}

// Close shuts every service down in reverse dependency order.
func (r *Runtime) Close() error {
	if err := r.injector.Shutdown(); err != nil {
		r.log.Warn("shutdown reported errors", "error", err)
	}
	return nil
}

// Bootstrap resolves every provider once. It is used to validate wiring.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*logging.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*sqlite.SQLiteRepository](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*services.Sweeper](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[api.API](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SweeperJob](injector); err != nil {
		return err
	}
	return nil
}
