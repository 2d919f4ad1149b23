package providers

import (
	"github.com/samber/do/v2"

	"timetracker/internal/api"
	"timetracker/internal/clock"
	"timetracker/internal/config"
	"timetracker/internal/logging"
	"timetracker/internal/repository/sqlite"
	"timetracker/internal/services"
	"timetracker/internal/validation"
)

// ProvideSettings resolves the calendar settings shared by the services.
func ProvideSettings(i do.Injector) (services.Settings, error) {
	cfg := do.MustInvoke[*config.Config](i)

	loc, err := cfg.Location()
	if err != nil {
		return services.Settings{}, err
	}
	return services.Settings{Location: loc, InactiveLabel: cfg.Tracking.InactiveLabel}, nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideSessionService provides the session service.
func ProvideSessionService(i do.Injector) (services.SessionService, error) {
	repo := do.MustInvoke[*sqlite.SQLiteRepository](i)
	clk := do.MustInvoke[clock.Clock](i)
	log := do.MustInvoke[*logging.Logger](i)
	return services.NewSessionService(repo, repo, clk, log), nil
}

// ProvideEntryService provides the entry service.
func ProvideEntryService(i do.Injector) (services.EntryService, error) {
	repo := do.MustInvoke[*sqlite.SQLiteRepository](i)
	clk := do.MustInvoke[clock.Clock](i)
	settings := do.MustInvoke[services.Settings](i)
	log := do.MustInvoke[*logging.Logger](i)
	return services.NewEntryService(repo, repo, clk, settings, log), nil
}

// ProvideTimelineService provides the timeline service.
func ProvideTimelineService(i do.Injector) (services.TimelineService, error) {
	repo := do.MustInvoke[*sqlite.SQLiteRepository](i)
	clk := do.MustInvoke[clock.Clock](i)
	settings := do.MustInvoke[services.Settings](i)
	log := do.MustInvoke[*logging.Logger](i)
	return services.NewTimelineService(repo, repo, clk, settings, log), nil
}

// ProvideDurationService provides the duration service.
func ProvideDurationService(i do.Injector) (services.DurationService, error) {
	repo := do.MustInvoke[*sqlite.SQLiteRepository](i)
	clk := do.MustInvoke[clock.Clock](i)
	settings := do.MustInvoke[services.Settings](i)
	log := do.MustInvoke[*logging.Logger](i)
	return services.NewDurationService(repo, repo, clk, settings, log), nil
}

// ProvideDirectoryService provides the user and task directory.
func ProvideDirectoryService(i do.Injector) (services.DirectoryService, error) {
	repo := do.MustInvoke[*sqlite.SQLiteRepository](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logging.Logger](i)
	return services.NewDirectoryService(repo, validator, log), nil
}

// ProvideSweeper provides the auto-completion sweeper.
func ProvideSweeper(i do.Injector) (*services.Sweeper, error) {
	repo := do.MustInvoke[*sqlite.SQLiteRepository](i)
	clk := do.MustInvoke[clock.Clock](i)
	settings := do.MustInvoke[services.Settings](i)
	log := do.MustInvoke[*logging.Logger](i)
	return services.NewSweeper(repo, clk, settings, log), nil
}

// ProvideAPI provides the API facade over all services.
func ProvideAPI(i do.Injector) (api.API, error) {
	log := do.MustInvoke[*logging.Logger](i)
	return api.New(api.Services{
		Sessions:  do.MustInvoke[services.SessionService](i),
		Entries:   do.MustInvoke[services.EntryService](i),
		Timeline:  do.MustInvoke[services.TimelineService](i),
		Durations: do.MustInvoke[services.DurationService](i),
		Directory: do.MustInvoke[services.DirectoryService](i),
		Sweeper:   do.MustInvoke[*services.Sweeper](i),
		Clock:     do.MustInvoke[clock.Clock](i),
	}, log), nil
}
