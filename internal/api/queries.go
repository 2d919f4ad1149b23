package api

import (
	"context"
	"time"

	"timetracker/internal/domain"
	"timetracker/internal/services"
)

func (a *apiImpl) ListEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.TimeEntry, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	entries, err := a.entries.ListEntries(ctx, userID, from, to)
	return entries, a.fail("list entries", err)
}

func (a *apiImpl) TaskDurations(ctx context.Context, userID int64, from, to *time.Time) ([]domain.TaskDuration, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	rows, err := a.durations.TaskDurations(ctx, userID, from, to)
	return rows, a.fail("task durations", err)
}

func (a *apiImpl) TimeIntervals(ctx context.Context, userID int64, from, to *time.Time) ([]domain.Interval, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	intervals, err := a.timeline.Intervals(ctx, userID, from, to)
	return intervals, a.fail("time intervals", err)
}

func (a *apiImpl) TotalWorkDuration(ctx context.Context, userID int64, from, to *time.Time) (*domain.TotalWorkDuration, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	total, err := a.durations.TotalWorkDuration(ctx, userID, from, to)
	return total, a.fail("total work duration", err)
}

func (a *apiImpl) ClearUserData(ctx context.Context, userID int64) (int64, error) {
	if err := validateID("user", userID); err != nil {
		return 0, err
	}
	deleted, err := a.entries.ClearUserData(ctx, userID)
	return deleted, a.fail("clear user data", err)
}

func (a *apiImpl) RunAutoCompletion(ctx context.Context) (*services.SweepResult, error) {
	result, err := a.sweeper.Run(ctx)
	return result, a.fail("auto-completion", err)
}
