package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"timetracker/internal/api"
	"timetracker/internal/clock"
	"timetracker/internal/config"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
)

const displayLayout = "2006-01-02 15:04"

// Command represents a CLI command handler.
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// App carries what every command handler needs: the API, the acting user
// and how to render results.
type App struct {
	api          api.API
	config       *config.Config
	out          io.Writer
	clock        clock.Clock
	loc          *time.Location
	userID       int64
	jsonOutput   bool
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application instance.
func NewApp(a api.API, cfg *config.Config, out io.Writer) *App {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	return &App{
		api:          a,
		config:       cfg,
		out:          out,
		clock:        clock.System{},
		loc:          loc,
		errorHandler: NewErrorHandler(),
	}
}

// WithUser sets the acting user.
func (a *App) WithUser(id int64) *App {
	a.userID = id
	return a
}

// WithJSON switches output to indented JSON.
func (a *App) WithJSON(enabled bool) *App {
	a.jsonOutput = enabled
	return a
}

// WithClock replaces the clock used to resolve relative times.
func (a *App) WithClock(c clock.Clock) *App {
	a.clock = c
	return a
}

func (a *App) requireUser() (int64, error) {
	if a.userID <= 0 {
		return 0, errors.NewInvalidArgumentError("user", a.userID, "set --user or TT_USER to a user ID")
	}
	return a.userID, nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func (a *App) formatTime(t time.Time) string {
	return t.In(a.loc).Format(displayLayout)
}

// sessionTitle names the session's task, falling back to its ID when the
// task could not be loaded.
func sessionTitle(s *api.TaskSession) string {
	if s.Task == nil {
		return fmt.Sprintf("task #%d", s.TimeEntry.TaskID)
	}
	return s.Task.Title
}

func (a *App) formatEnd(e *domain.TimeEntry) string {
	if e.IsRunning() {
		return "running"
	}
	return a.formatTime(*e.EndTime)
}

// taskTitles maps task IDs to titles for every task the user has.
func (a *App) taskTitles(ctx context.Context, userID int64) (map[int64]string, error) {
	tasks, err := a.api.ListTasks(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	titles := make(map[int64]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}
	return titles, nil
}

// resolveTask accepts a numeric task ID or a task title, matched case-insensitively.
func (a *App) resolveTask(ctx context.Context, userID int64, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return a.api.GetTask(ctx, userID, id)
	}

	tasks, err := a.api.ListTasks(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if strings.EqualFold(t.Title, ref) {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("task", ref)
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidArgumentError(kind, s, "must be a positive integer")
	}
	return id, nil
}
