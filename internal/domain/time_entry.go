package domain

import (
	"time"
)

// TimeEntry is one contiguous span of work on a task. EndTime is nil while
// the entry is open; a user has at most one open entry at a time.
type TimeEntry struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	TaskID    int64      `json:"task_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewTimeEntry creates an open TimeEntry for the given user and task.
func NewTimeEntry(userID, taskID int64, startTime time.Time) TimeEntry {
	return TimeEntry{
		UserID:    userID,
		TaskID:    taskID,
		StartTime: startTime,
	}
}

// IsRunning returns true if the time entry is currently running (no end time).
func (te TimeEntry) IsRunning() bool {
	return te.EndTime == nil
}

// Stop sets the end time for the time entry.
func (te TimeEntry) Stop(endTime time.Time) TimeEntry {
	te.EndTime = &endTime
	return te
}

// EffectiveEnd is EndTime, or now for a running entry.
func (te TimeEntry) EffectiveEnd(now time.Time) time.Time {
	if te.IsRunning() {
		return now
	}
	return *te.EndTime
}

// Duration is the elapsed time up to EffectiveEnd.
func (te TimeEntry) Duration(now time.Time) time.Duration {
	return te.EffectiveEnd(now).Sub(te.StartTime)
}

// ElapsedSeconds is Duration truncated to whole seconds.
func (te TimeEntry) ElapsedSeconds(now time.Time) int64 {
	return int64(te.Duration(now) / time.Second)
}

// StartedBeforeDay reports whether the entry's start falls on a calendar
// date strictly before the date of now, both taken in loc.
func (te TimeEntry) StartedBeforeDay(now time.Time, loc *time.Location) bool {
	return te.StartTime.In(loc).Before(StartOfDay(now, loc))
}

// AutoCompletionEnd is 23:59:00 on the entry's start date in loc. An entry
// started during the final minute of its day is closed at its own start.
func (te TimeEntry) AutoCompletionEnd(loc *time.Location) time.Time {
	start := te.StartTime.In(loc)
	end := time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 0, 0, loc)
	if end.Before(start) {
		return start
	}
	return end
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.UserID <= 0 || te.TaskID <= 0 {
		return false
	}
	if te.StartTime.IsZero() {
		return false
	}
	if te.EndTime != nil && te.EndTime.Before(te.StartTime) {
		return false
	}
	return true
}

// StartOfDay is midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
