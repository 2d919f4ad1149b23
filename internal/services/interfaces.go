package services

import (
	"context"
	"time"

	"timetracker/internal/domain"
)

// EntryStore persists time entries. Implementations must guarantee that a
// user never has more than one open entry, including under concurrent calls.
type EntryStore interface {
	// StartEntry closes the user's open entry at now, if any, and opens a new
	// one for taskID at now as a single atomic step.
	StartEntry(ctx context.Context, userID, taskID int64, now time.Time) (started, closed *domain.TimeEntry, err error)
	// StopOpenEntry closes the user's open entry at end. It returns nil, nil
	// when nothing is open.
	StopOpenEntry(ctx context.Context, userID int64, end time.Time) (*domain.TimeEntry, error)
	GetOpenEntry(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	// CloseEntry sets end only if the entry is still open and reports whether it did.
	CloseEntry(ctx context.Context, id int64, end time.Time) (bool, error)
	// ListEntriesInRange returns entries whose start lies in [from, to], ordered by start.
	ListEntriesInRange(ctx context.Context, userID int64, from, to time.Time) ([]*domain.TimeEntry, error)
	ListOpenEntries(ctx context.Context) ([]*domain.TimeEntry, error)
	// FirstEntryStart returns the earliest start for the task across all time, or nil.
	FirstEntryStart(ctx context.Context, userID, taskID int64) (*time.Time, error)
	DeleteUserEntries(ctx context.Context, userID int64) (int64, error)
}

// Directory answers the user and task lookups the tracking services need.
type Directory interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
}

// DirectoryStore is the full user and task storage used by DirectoryService.
type DirectoryStore interface {
	Directory
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateTask(ctx context.Context, task *domain.Task) error
	ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error)
	SetTaskActive(ctx context.Context, id int64, active bool) error
}

// Settings carries the calendar and labelling choices shared by the services.
type Settings struct {
	// Location decides where calendar days begin and end.
	Location *time.Location
	// InactiveLabel names the gaps between work in a reconstructed timeline.
	InactiveLabel string
}

// DefaultInactiveLabel is used when Settings.InactiveLabel is empty.
const DefaultInactiveLabel = "Inactive"

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s Settings) inactiveLabel() string {
	if s.InactiveLabel == "" {
		return DefaultInactiveLabel
	}
	return s.InactiveLabel
}

// SessionService starts and stops the live timer.
type SessionService interface {
	Start(ctx context.Context, userID, taskID int64) (*domain.TimeEntry, error)
	Stop(ctx context.Context, userID int64) (*domain.TimeEntry, error)
	Current(ctx context.Context, userID int64) (*domain.TimeEntry, error)
}

// EntryService reads and clears a user's raw time entries.
type EntryService interface {
	ListEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.TimeEntry, error)
	ClearUserData(ctx context.Context, userID int64) (int64, error)
}

// TimelineService reconstructs gap-filled work and inactivity intervals.
type TimelineService interface {
	Intervals(ctx context.Context, userID int64, from, to *time.Time) ([]domain.Interval, error)
}

// DurationService aggregates recorded work.
type DurationService interface {
	TaskDurations(ctx context.Context, userID int64, from, to *time.Time) ([]domain.TaskDuration, error)
	TotalWorkDuration(ctx context.Context, userID int64, from, to *time.Time) (*domain.TotalWorkDuration, error)
}

// DirectoryService manages users and their tasks.
type DirectoryService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error)
	SetTaskActive(ctx context.Context, userID, taskID int64, active bool) (*domain.Task, error)
}
