package services

import (
	"context"
	"time"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/logging"
)

type entryServiceImpl struct {
	entries  EntryStore
	dir      Directory
	clock    clock.Clock
	settings Settings
	log      *logging.Logger
}

// NewEntryService creates a new EntryService instance
func NewEntryService(entries EntryStore, dir Directory, clk clock.Clock, settings Settings, log *logging.Logger) EntryService {
	return &entryServiceImpl{
		entries:  entries,
		dir:      dir,
		clock:    clk,
		settings: settings,
		log:      log.With("component", "entries"),
	}
}

// ListEntries returns the user's entries started within the window resolved
// by domain.TodayWindow, oldest first.
func (s *entryServiceImpl) ListEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.TimeEntry, error) {
	if err := ensureUser(ctx, s.dir, userID); err != nil {
		return nil, err
	}

	window, err := domain.TodayWindow(s.clock.Now(), s.settings.location(), from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntriesInRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, err
	}
	s.log.Debug("listed entries", "user_id", userID, "from", window.From, "to", window.To, "count", len(entries))
	return entries, nil
}

// ClearUserData deletes every time entry the user has and returns how many were removed.
func (s *entryServiceImpl) ClearUserData(ctx context.Context, userID int64) (int64, error) {
	if err := ensureUser(ctx, s.dir, userID); err != nil {
		return 0, err
	}

	deleted, err := s.entries.DeleteUserEntries(ctx, userID)
	if err != nil {
		s.log.Error("failed to clear tracking data", "user_id", userID, "error", err)
		return 0, err
	}
	s.log.Info("cleared tracking data", "user_id", userID, "deleted", deleted)
	return deleted, nil
}
