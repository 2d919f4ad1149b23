// Package api is the single entry point the command line and the daemon use
// to drive tracking. It checks identifiers, delegates to the services and
// shapes their results for display.
package api

import (
	"context"
	"time"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/logging"
	"timetracker/internal/services"
)

// TaskSession pairs a time entry with its task and the time it covers so far.
// Task is nil when a start or stop was stored but the task could not be loaded.
type TaskSession struct {
	Task      *domain.Task      `json:"task"`
	TimeEntry *domain.TimeEntry `json:"time_entry"`
	Duration  string            `json:"duration"`
}

// API defines every tracking and directory operation exposed to callers.
type API interface {
	// ========== Sessions ==========

	// StartSession closes the user's running entry, if any, and starts taskID.
	StartSession(ctx context.Context, userID, taskID int64) (*TaskSession, error)

	// StopSession closes the user's running entry. It fails with an
	// InvalidState error when nothing is running.
	StopSession(ctx context.Context, userID int64) (*TaskSession, error)

	// CurrentSession returns the running session, or nil when the user is idle.
	CurrentSession(ctx context.Context, userID int64) (*TaskSession, error)

	// ========== Queries ==========

	ListEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.TimeEntry, error)
	TaskDurations(ctx context.Context, userID int64, from, to *time.Time) ([]domain.TaskDuration, error)
	TimeIntervals(ctx context.Context, userID int64, from, to *time.Time) ([]domain.Interval, error)
	TotalWorkDuration(ctx context.Context, userID int64, from, to *time.Time) (*domain.TotalWorkDuration, error)

	// ========== Maintenance ==========

	// ClearUserData removes all of the user's time entries and reports how many went.
	ClearUserData(ctx context.Context, userID int64) (int64, error)

	// RunAutoCompletion closes entries left open from earlier days.
	RunAutoCompletion(ctx context.Context) (*services.SweepResult, error)

	// ========== Directory ==========

	CreateUser(ctx context.Context, name, email string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateTask(ctx context.Context, userID int64, title, description string) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error)
	SetTaskActive(ctx context.Context, userID, taskID int64, active bool) (*domain.Task, error)
}

// AutoCompleter runs one auto-completion sweep.
type AutoCompleter interface {
	Run(ctx context.Context) (*services.SweepResult, error)
}

// Services groups the collaborators the API delegates to.
type Services struct {
	Sessions  services.SessionService
	Entries   services.EntryService
	Timeline  services.TimelineService
	Durations services.DurationService
	Directory services.DirectoryService
	Sweeper   AutoCompleter
	Clock     clock.Clock
}

type apiImpl struct {
	sessions  services.SessionService
	entries   services.EntryService
	timeline  services.TimelineService
	durations services.DurationService
	directory services.DirectoryService
	sweeper   AutoCompleter
	clock     clock.Clock
	log       *logging.Logger
}

// New creates a new API instance.
func New(s Services, log *logging.Logger) API {
	clk := s.Clock
	if clk == nil {
		clk = clock.System{}
	}
	return &apiImpl{
		sessions:  s.Sessions,
		entries:   s.Entries,
		timeline:  s.Timeline,
		durations: s.Durations,
		directory: s.Directory,
		sweeper:   s.Sweeper,
		clock:     clk,
		log:       log.With("component", "api"),
	}
}

// fail logs err and returns it unchanged; nil passes through silently.
// Caller mistakes go to debug, system failures to error.
func (a *apiImpl) fail(operation string, err error) error {
	if err == nil {
		return nil
	}
	attrs := []any{"operation", operation, "code", errors.GetErrorCode(err), "error", err}
	if errors.ShouldLogError(err) {
		a.log.Error("operation failed", attrs...)
	} else {
		a.log.Debug("operation rejected", attrs...)
	}
	return err
}
