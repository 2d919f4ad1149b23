package providers

import (
	"context"

	"github.com/samber/do/v2"

	"timetracker/internal/clock"
	"timetracker/internal/config"
	"timetracker/internal/logging"
	"timetracker/internal/scheduler"
	"timetracker/internal/services"
)

// SweeperJob runs the auto-completion sweeper once a day.
type SweeperJob struct {
	*scheduler.Runner
}

// Shutdown implements do.Shutdownable.
func (j *SweeperJob) Shutdown() error {
	return j.Runner.Shutdown()
}

// ProvideSweeperJob provides the daily auto-completion job. The job is not
// started here; the daemon starts it.
func ProvideSweeperJob(i do.Injector) (*SweeperJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sweeper := do.MustInvoke[*services.Sweeper](i)
	settings := do.MustInvoke[services.Settings](i)
	clk := do.MustInvoke[clock.Clock](i)
	log := do.MustInvoke[*logging.Logger](i)

	hour, minute, err := cfg.SweepTime()
	if err != nil {
		return nil, err
	}

	job := func(ctx context.Context) error {
		_, err := sweeper.Run(ctx)
		return err
	}

	runner := scheduler.NewRunner("auto-completion",
		scheduler.DailyAt{Hour: hour, Minute: minute, Location: settings.Location},
		job, clk, log,
		scheduler.Options{RunOnStart: cfg.Sweeper.RunOnStart},
	)

	return &SweeperJob{Runner: runner}, nil
}
