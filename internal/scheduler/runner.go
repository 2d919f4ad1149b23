package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"timetracker/internal/clock"
	"timetracker/internal/errors"
	"timetracker/internal/logging"
)

// Job is one unit of scheduled work. A returned error is logged and the
// schedule carries on.
type Job func(ctx context.Context) error

// Options configures a Runner.
type Options struct {
	// RunOnStart runs the job once immediately before waiting for the first slot.
	RunOnStart bool
}

// Runner executes a Job on a Schedule from a single goroutine, so runs of
// the same job never overlap.
type Runner struct {
	name     string
	schedule Schedule
	job      Job
	clock    clock.Clock
	log      *logging.Logger
	opts     Options

	runs     atomic.Int64
	failures atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a Runner. It does nothing until Start is called.
func NewRunner(name string, schedule Schedule, job Job, clk clock.Clock, log *logging.Logger, opts Options) *Runner {
	return &Runner{
		name:     name,
		schedule: schedule,
		job:      job,
		clock:    clk,
		log:      log.With("job", name),
		opts:     opts,
	}
}

// Start launches the background loop. It fails if the runner is already running.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return errors.NewInvalidStateError("scheduler " + r.name + " is already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)

	r.log.Info("scheduled job started", "run_on_start", r.opts.RunOnStart)
	return nil
}

// Stop cancels the loop and waits for an in-flight run to return.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.log.Info("scheduled job stopped", "runs", r.Runs(), "failures", r.Failures())
}

// Shutdown implements do.Shutdownable.
func (r *Runner) Shutdown() error {
	r.Stop()
	return nil
}

// Runs is the number of completed runs, failed or not.
func (r *Runner) Runs() int64 { return r.runs.Load() }

// Failures is the number of runs that returned an error.
func (r *Runner) Failures() int64 { return r.failures.Load() }

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	if r.opts.RunOnStart {
		r.run(ctx, "startup")
	}

	for {
		now := r.clock.Now()
		next := r.schedule.Next(now)
		wait := next.Sub(now)
		if wait < 0 {
			wait = 0
		}
		r.log.Debug("next scheduled run", "at", next, "in", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.run(ctx, "schedule")
		}
	}
}

func (r *Runner) run(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	started := time.Now()
	err := r.job(ctx)
	r.runs.Add(1)
	if err != nil {
		r.failures.Add(1)
		r.log.Warn("scheduled job failed", "trigger", trigger, "error", err)
		return
	}
	r.log.Debug("scheduled job finished", "trigger", trigger, "elapsed", time.Since(started))
}
