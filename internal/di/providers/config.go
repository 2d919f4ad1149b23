// Package providers contains dependency injection providers for the time tracker.
package providers

import (
	"github.com/samber/do/v2"

	"timetracker/internal/clock"
	"timetracker/internal/config"
	"timetracker/internal/logging"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logging.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logging.New(logging.Config{
		Writer: do.MustInvokeNamed[LogWriter](i, LogWriterName),
		Format: cfg.Log.Format,
		Level:  logging.ParseLevel(cfg.Log.Level),
	})

	log.Debug("logger ready",
		"environment", cfg.Application.Environment,
		"log_level", cfg.Log.Level,
		"database", cfg.GetDatabasePath(),
	)

	return log, nil
}

// ProvideClock provides the wall clock.
func ProvideClock(i do.Injector) (clock.Clock, error) {
	return clock.System{}, nil
}
