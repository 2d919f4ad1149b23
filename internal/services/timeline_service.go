package services

import (
	"context"
	"time"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/logging"
)

type timelineServiceImpl struct {
	entries  EntryStore
	dir      Directory
	clock    clock.Clock
	settings Settings
	log      *logging.Logger
}

// NewTimelineService creates a new TimelineService instance
func NewTimelineService(entries EntryStore, dir Directory, clk clock.Clock, settings Settings, log *logging.Logger) TimelineService {
	return &timelineServiceImpl{
		entries:  entries,
		dir:      dir,
		clock:    clk,
		settings: settings,
		log:      log.With("component", "timeline"),
	}
}

// Intervals tiles the window resolved by domain.TimelineWindow with work
// intervals for each entry and inactivity intervals for the gaps between them.
func (s *timelineServiceImpl) Intervals(ctx context.Context, userID int64, from, to *time.Time) ([]domain.Interval, error) {
	if err := ensureUser(ctx, s.dir, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	window, err := domain.TimelineWindow(now, from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntriesInRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, err
	}

	titles := make(map[int64]string)
	for _, e := range entries {
		if _, ok := titles[e.TaskID]; ok {
			continue
		}
		task, err := s.dir.GetTask(ctx, e.TaskID)
		if err != nil {
			return nil, err
		}
		titles[e.TaskID] = task.Title
	}

	intervals := BuildTimeline(window, entries, titles, now, s.settings.inactiveLabel())
	s.log.Debug("built timeline", "user_id", userID, "entries", len(entries), "intervals", len(intervals))
	return intervals, nil
}

// BuildTimeline walks entries in start order with a cursor at window.From.
// A gap before an entry becomes an inactivity interval, each entry becomes a
// work interval ending at its effective end, and any time left before
// window.To becomes a trailing inactivity interval. Work that runs past
// window.To is not clipped.
func BuildTimeline(window domain.Window, entries []*domain.TimeEntry, titles map[int64]string, now time.Time, inactiveLabel string) []domain.Interval {
	intervals := make([]domain.Interval, 0, 2*len(entries)+1)
	previousEnd := window.From

	for _, e := range entries {
		end := e.EffectiveEnd(now)

		if previousEnd.Before(e.StartTime) {
			intervals = append(intervals, inactivity(previousEnd, e.StartTime, inactiveLabel))
		}

		intervals = append(intervals, domain.Interval{
			Start:    e.StartTime,
			End:      end,
			IsWork:   true,
			Label:    titles[e.TaskID],
			TaskID:   e.TaskID,
			Duration: formatSpan(e.StartTime, end),
		})

		if end.After(previousEnd) {
			previousEnd = end
		}
	}

	if previousEnd.Before(window.To) {
		intervals = append(intervals, inactivity(previousEnd, window.To, inactiveLabel))
	}

	return intervals
}

func inactivity(start, end time.Time, label string) domain.Interval {
	return domain.Interval{
		Start:    start,
		End:      end,
		IsWork:   false,
		Label:    label,
		Duration: formatSpan(start, end),
	}
}

func formatSpan(start, end time.Time) string {
	return domain.FormatDuration(int64(end.Sub(start) / time.Second))
}
