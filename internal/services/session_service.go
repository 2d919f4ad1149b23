package services

import (
	"context"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/logging"
)

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	entries EntryStore
	dir     Directory
	clock   clock.Clock
	log     *logging.Logger
}

// NewSessionService creates a new SessionService instance
func NewSessionService(entries EntryStore, dir Directory, clk clock.Clock, log *logging.Logger) SessionService {
	return &sessionServiceImpl{
		entries: entries,
		dir:     dir,
		clock:   clk,
		log:     log.With("component", "session"),
	}
}

// Start begins tracking taskID for userID at the current instant. A session
// already running for the user is closed at that same instant.
func (s *sessionServiceImpl) Start(ctx context.Context, userID, taskID int64) (*domain.TimeEntry, error) {
	if err := ensureUser(ctx, s.dir, userID); err != nil {
		return nil, err
	}
	if _, err := ownedTask(ctx, s.dir, userID, taskID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	started, closed, err := s.entries.StartEntry(ctx, userID, taskID, now)
	if err != nil {
		s.log.Error("failed to start session", "user_id", userID, "task_id", taskID, "error", err)
		return nil, err
	}

	if closed != nil {
		s.log.Info("closed running session",
			"user_id", userID, "entry_id", closed.ID, "task_id", closed.TaskID,
			"duration", domain.FormatDuration(closed.ElapsedSeconds(now)))
	}
	s.log.Info("session started", "user_id", userID, "entry_id", started.ID, "task_id", taskID)
	return started, nil
}

// Stop closes the user's running session at the current instant.
func (s *sessionServiceImpl) Stop(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	if err := ensureUser(ctx, s.dir, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	stopped, err := s.entries.StopOpenEntry(ctx, userID, now)
	if err != nil {
		s.log.Error("failed to stop session", "user_id", userID, "error", err)
		return nil, err
	}
	if stopped == nil {
		return nil, errors.NewNoActiveSessionError(userID)
	}

	s.log.Info("session stopped",
		"user_id", userID, "entry_id", stopped.ID, "task_id", stopped.TaskID,
		"duration", domain.FormatDuration(stopped.ElapsedSeconds(now)))
	return stopped, nil
}

// Current returns the user's running entry, or nil when idle.
func (s *sessionServiceImpl) Current(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	if err := ensureUser(ctx, s.dir, userID); err != nil {
		return nil, err
	}
	return s.entries.GetOpenEntry(ctx, userID)
}
