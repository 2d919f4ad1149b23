package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/logging"
	"timetracker/internal/repository/sqlite"
)

// fixture wires the services to an in-memory repository and a fake clock.
type fixture struct {
	repo     *sqlite.SQLiteRepository
	clock    *clock.Fake
	settings Settings
	log      *logging.Logger
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return &fixture{
		repo:     repo,
		clock:    clock.NewFake(now),
		settings: Settings{Location: time.UTC, InactiveLabel: "Inactive"},
		log:      logging.Discard(),
	}
}

func (f *fixture) sessions() SessionService {
	return NewSessionService(f.repo, f.repo, f.clock, f.log)
}

func (f *fixture) timeline() TimelineService {
	return NewTimelineService(f.repo, f.repo, f.clock, f.settings, f.log)
}

func (f *fixture) durations() DurationService {
	return NewDurationService(f.repo, f.repo, f.clock, f.settings, f.log)
}

func (f *fixture) entryService() EntryService {
	return NewEntryService(f.repo, f.repo, f.clock, f.settings, f.log)
}

func (f *fixture) sweeper() *Sweeper {
	return NewSweeper(f.repo, f.clock, f.settings, f.log)
}

func (f *fixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	user := domain.NewUser("Test User", email)
	require.NoError(t, f.repo.CreateUser(context.Background(), &user))
	return &user
}

func (f *fixture) task(t *testing.T, userID int64, title string) *domain.Task {
	t.Helper()
	task := domain.NewTask(userID, title, "")
	require.NoError(t, f.repo.CreateTask(context.Background(), &task))
	return &task
}

// record stores an entry from start to end; a nil end leaves it open.
// Entries for one user must be recorded in start order.
func (f *fixture) record(t *testing.T, userID, taskID int64, start time.Time, end *time.Time) *domain.TimeEntry {
	t.Helper()
	ctx := context.Background()
	entry, _, err := f.repo.StartEntry(ctx, userID, taskID, start)
	require.NoError(t, err)
	if end == nil {
		return entry
	}
	stopped, err := f.repo.StopOpenEntry(ctx, userID, *end)
	require.NoError(t, err)
	return stopped
}

// stored reloads e from the repository.
func (f *fixture) stored(t *testing.T, e *domain.TimeEntry) *domain.TimeEntry {
	t.Helper()
	entries, err := f.repo.ListEntriesInRange(context.Background(), e.UserID, e.StartTime, e.StartTime)
	require.NoError(t, err)
	for _, got := range entries {
		if got.ID == e.ID {
			return got
		}
	}
	t.Fatalf("time entry %d is not stored", e.ID)
	return nil
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func assertErrorType(errorType errors.ErrorType) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errorType), "expected %s, got %v", errorType, err)
	}
}

// stubEntryStore fails the calls whose error fields are set and delegates the rest.
type stubEntryStore struct {
	EntryStore
	listErr  error
	openErr  error
	closeErr error
	firstErr error
}

func (s *stubEntryStore) ListEntriesInRange(ctx context.Context, userID int64, from, to time.Time) ([]*domain.TimeEntry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.EntryStore.ListEntriesInRange(ctx, userID, from, to)
}

func (s *stubEntryStore) ListOpenEntries(ctx context.Context) ([]*domain.TimeEntry, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.EntryStore.ListOpenEntries(ctx)
}

func (s *stubEntryStore) CloseEntry(ctx context.Context, id int64, end time.Time) (bool, error) {
	if s.closeErr != nil {
		return false, s.closeErr
	}
	return s.EntryStore.CloseEntry(ctx, id, end)
}

func (s *stubEntryStore) FirstEntryStart(ctx context.Context, userID, taskID int64) (*time.Time, error) {
	if s.firstErr != nil {
		return nil, s.firstErr
	}
	return s.EntryStore.FirstEntryStart(ctx, userID, taskID)
}

// stubDirectory fails task lookups when taskErr is set.
type stubDirectory struct {
	Directory
	taskErr error
}

func (s *stubDirectory) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if s.taskErr != nil {
		return nil, s.taskErr
	}
	return s.Directory.GetTask(ctx, id)
}
