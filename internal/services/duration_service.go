package services

import (
	"context"
	"sort"
	"time"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/logging"
)

type durationServiceImpl struct {
	entries  EntryStore
	dir      Directory
	clock    clock.Clock
	settings Settings
	log      *logging.Logger
}

// NewDurationService creates a new DurationService instance
func NewDurationService(entries EntryStore, dir Directory, clk clock.Clock, settings Settings, log *logging.Logger) DurationService {
	return &durationServiceImpl{
		entries:  entries,
		dir:      dir,
		clock:    clk,
		settings: settings,
		log:      log.With("component", "durations"),
	}
}

// TaskDurations sums recorded work per task over the window resolved by
// domain.TodayWindow. Results are ordered by each task's earliest entry
// ever, with tasks lacking one last. A failure while building any row fails
// the whole call.
func (s *durationServiceImpl) TaskDurations(ctx context.Context, userID int64, from, to *time.Time) ([]domain.TaskDuration, error) {
	now := s.clock.Now()
	window, err := domain.TodayWindow(now, s.settings.location(), from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntriesInRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, err
	}

	totals, order := groupByTask(entries, now)

	durations := make([]domain.TaskDuration, 0, len(order))
	for _, taskID := range order {
		row, err := s.taskDuration(ctx, userID, taskID, totals[taskID])
		if errors.IsInterrupted(err) {
			return nil, err
		}
		if err != nil {
			s.log.Warn("failed to aggregate task duration", "user_id", userID, "task_id", taskID, "error", err)
			return nil, errors.WrapError(err, errors.ErrorTypeInvalidArgument, "failed to aggregate task durations")
		}
		durations = append(durations, row)
	}

	sortByFirstEntry(durations)
	return durations, nil
}

func (s *durationServiceImpl) taskDuration(ctx context.Context, userID, taskID, seconds int64) (domain.TaskDuration, error) {
	task, err := s.dir.GetTask(ctx, taskID)
	if err != nil {
		return domain.TaskDuration{}, err
	}
	first, err := s.entries.FirstEntryStart(ctx, userID, taskID)
	if err != nil {
		return domain.TaskDuration{}, err
	}
	return domain.TaskDuration{
		TaskID:         taskID,
		Title:          task.Title,
		TotalSeconds:   seconds,
		Duration:       domain.FormatDuration(seconds),
		FirstEntryTime: first,
	}, nil
}

// TotalWorkDuration sums recorded work across all tasks over the window
// resolved by domain.WeekWindow.
func (s *durationServiceImpl) TotalWorkDuration(ctx context.Context, userID int64, from, to *time.Time) (*domain.TotalWorkDuration, error) {
	now := s.clock.Now()
	window, err := domain.WeekWindow(now, from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntriesInRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range entries {
		total += elapsedSeconds(e, now)
	}

	return &domain.TotalWorkDuration{
		TotalSeconds: total,
		Duration:     domain.FormatDuration(total),
		Days:         window.DaysSpanned(s.settings.location()),
		From:         window.From,
		To:           window.To,
	}, nil
}

// groupByTask returns elapsed seconds per task and the task IDs in the order first seen.
func groupByTask(entries []*domain.TimeEntry, now time.Time) (map[int64]int64, []int64) {
	totals := make(map[int64]int64)
	var order []int64
	for _, e := range entries {
		if _, seen := totals[e.TaskID]; !seen {
			order = append(order, e.TaskID)
		}
		totals[e.TaskID] += elapsedSeconds(e, now)
	}
	return totals, order
}

// elapsedSeconds never goes negative, which can only happen for an open
// entry whose start is ahead of the clock.
func elapsedSeconds(e *domain.TimeEntry, now time.Time) int64 {
	if s := e.ElapsedSeconds(now); s > 0 {
		return s
	}
	return 0
}

func sortByFirstEntry(durations []domain.TaskDuration) {
	sort.SliceStable(durations, func(i, j int) bool {
		a, b := durations[i].FirstEntryTime, durations[j].FirstEntryTime
		switch {
		case a == nil && b == nil:
			return durations[i].TaskID < durations[j].TaskID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return durations[i].TaskID < durations[j].TaskID
	})
}
