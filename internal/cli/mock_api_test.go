package cli

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"timetracker/internal/api"
	"timetracker/internal/config"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/services"
)

var monday = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(monday.Year(), monday.Month(), monday.Day(), hour, minute, 0, 0, time.UTC)
}

// mockAPI implements api.API in memory for command tests. Canned report
// results are returned as set; the windows they were asked for are recorded.
type mockAPI struct {
	now     time.Time
	users   map[int64]*domain.User
	tasks   map[int64]*domain.Task
	entries []*domain.TimeEntry

	nextUserID  int64
	nextTaskID  int64
	nextEntryID int64

	durations []domain.TaskDuration
	intervals []domain.Interval
	total     *domain.TotalWorkDuration
	sweep     *services.SweepResult

	// err, when set, is returned by every call.
	err error

	lastFrom *time.Time
	lastTo   *time.Time
	cleared  int64
}

func newMockAPI(now time.Time) *mockAPI {
	return &mockAPI{
		now:         now,
		users:       make(map[int64]*domain.User),
		tasks:       make(map[int64]*domain.Task),
		nextUserID:  1,
		nextTaskID:  1,
		nextEntryID: 1,
	}
}

func (m *mockAPI) addUser(name, email string) *domain.User {
	u := &domain.User{ID: m.nextUserID, Name: name, Email: email, CreatedAt: m.now}
	m.users[u.ID] = u
	m.nextUserID++
	return u
}

func (m *mockAPI) addTask(userID int64, title string) *domain.Task {
	t := &domain.Task{ID: m.nextTaskID, UserID: userID, Title: title, Active: true, CreatedAt: m.now}
	m.tasks[t.ID] = t
	m.nextTaskID++
	return t
}

func (m *mockAPI) addEntry(userID, taskID int64, start time.Time, end *time.Time) *domain.TimeEntry {
	e := &domain.TimeEntry{ID: m.nextEntryID, UserID: userID, TaskID: taskID, StartTime: start, EndTime: end, CreatedAt: start}
	m.entries = append(m.entries, e)
	m.nextEntryID++
	return e
}

func (m *mockAPI) open(userID int64) *domain.TimeEntry {
	for _, e := range m.entries {
		if e.UserID == userID && e.IsRunning() {
			return e
		}
	}
	return nil
}

func (m *mockAPI) session(e *domain.TimeEntry) *api.TaskSession {
	return &api.TaskSession{
		Task:      m.tasks[e.TaskID],
		TimeEntry: e,
		Duration:  domain.FormatDuration(e.ElapsedSeconds(m.now)),
	}
}

func (m *mockAPI) checkUser(userID int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[userID]; !ok {
		return errors.NewNotFoundError("user", strconv.FormatInt(userID, 10))
	}
	return nil
}

func (m *mockAPI) StartSession(ctx context.Context, userID, taskID int64) (*api.TaskSession, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	if _, err := m.GetTask(ctx, userID, taskID); err != nil {
		return nil, err
	}
	if running := m.open(userID); running != nil {
		end := m.now
		running.EndTime = &end
	}
	return m.session(m.addEntry(userID, taskID, m.now, nil)), nil
}

func (m *mockAPI) StopSession(ctx context.Context, userID int64) (*api.TaskSession, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	running := m.open(userID)
	if running == nil {
		return nil, errors.NewNoActiveSessionError(userID)
	}
	end := m.now
	running.EndTime = &end
	return m.session(running), nil
}

func (m *mockAPI) CurrentSession(ctx context.Context, userID int64) (*api.TaskSession, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	if running := m.open(userID); running != nil {
		return m.session(running), nil
	}
	return nil, nil
}

func (m *mockAPI) ListEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.TimeEntry, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	m.lastFrom, m.lastTo = from, to
	var out []*domain.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockAPI) TaskDurations(ctx context.Context, userID int64, from, to *time.Time) ([]domain.TaskDuration, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFrom, m.lastTo = from, to
	return m.durations, nil
}

func (m *mockAPI) TimeIntervals(ctx context.Context, userID int64, from, to *time.Time) ([]domain.Interval, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	m.lastFrom, m.lastTo = from, to
	return m.intervals, nil
}

func (m *mockAPI) TotalWorkDuration(ctx context.Context, userID int64, from, to *time.Time) (*domain.TotalWorkDuration, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFrom, m.lastTo = from, to
	return m.total, nil
}

func (m *mockAPI) ClearUserData(ctx context.Context, userID int64) (int64, error) {
	if err := m.checkUser(userID); err != nil {
		return 0, err
	}
	var kept []*domain.TimeEntry
	var deleted int64
	for _, e := range m.entries {
		if e.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	m.cleared += deleted
	return deleted, nil
}

func (m *mockAPI) RunAutoCompletion(ctx context.Context) (*services.SweepResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sweep, nil
}

func (m *mockAPI) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return nil, errors.NewConflictError("user", "email", email)
		}
	}
	return m.addUser(name, email), nil
}

func (m *mockAPI) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := m.checkUser(id); err != nil {
		return nil, err
	}
	return m.users[id], nil
}

func (m *mockAPI) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.User, 0, len(m.users))
	for id := int64(1); id < m.nextUserID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockAPI) CreateTask(ctx context.Context, userID int64, title, description string) (*domain.Task, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.NewValidationError("title is required", nil)
	}
	t := m.addTask(userID, title)
	t.Description = description
	return t, nil
}

func (m *mockAPI) GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, errors.NewNotFoundError("task", strconv.FormatInt(taskID, 10))
	}
	return t, nil
}

func (m *mockAPI) ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error) {
	if err := m.checkUser(userID); err != nil {
		return nil, err
	}
	var out []*domain.Task
	for id := int64(1); id < m.nextTaskID; id++ {
		t, ok := m.tasks[id]
		if !ok || t.UserID != userID || (!includeInactive && !t.Active) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockAPI) SetTaskActive(ctx context.Context, userID, taskID int64, active bool) (*domain.Task, error) {
	t, err := m.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Active = active
	return t, nil
}

// mockBackend hands the mock API to the root command.
type mockBackend struct {
	api        *mockAPI
	started    bool
	startErr   error
	closed     bool
	connectErr error
	config     *config.Config
}

func (b *mockBackend) API() api.API { return b.api }

func (b *mockBackend) StartScheduler(ctx context.Context) error {
	b.started = true
	return b.startErr
}

func (b *mockBackend) Close() error {
	b.closed = true
	return nil
}

// runCLI executes tt with args against backend and returns stdout.
func runCLI(t *testing.T, backend *mockBackend, args ...string) (string, error) {
	t.Helper()
	return execCLI(context.Background(), t, backend, "", args...)
}

func runCLIContext(ctx context.Context, t *testing.T, backend *mockBackend, args ...string) (string, error) {
	t.Helper()
	return execCLI(ctx, t, backend, "", args...)
}

// runCLIWithEnvUser is runCLI with TT_USER set to user.
func runCLIWithEnvUser(t *testing.T, backend *mockBackend, user string, args ...string) (string, error) {
	t.Helper()
	return execCLI(context.Background(), t, backend, user, args...)
}

func execCLI(ctx context.Context, t *testing.T, backend *mockBackend, envUser string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TT_CONFIG", "")
	t.Setenv("TT_USER", envUser)

	connect := func(cfg *config.Config, _ io.Writer) (Backend, error) {
		if backend.connectErr != nil {
			return nil, backend.connectErr
		}
		backend.config = cfg
		return backend, nil
	}

	var out bytes.Buffer
	root := NewRootCommand(connect, &out, io.Discard)
	root.Command().SetArgs(append([]string{"--timezone", "UTC", "--db-dir", t.TempDir()}, args...))
	err := root.Execute(ctx)
	return out.String(), err
}
