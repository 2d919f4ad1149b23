package domain

import (
	"time"

	"timetracker/internal/errors"
)

// DefaultLookback is the span used when a week-based policy has to invent a bound.
const DefaultLookback = 7 * 24 * time.Hour

// Window is a closed time range [From, To].
type Window struct {
	From time.Time
	To   time.Time
}

// DaysSpanned counts calendar dates touched by the window in loc, both ends included.
func (w Window) DaysSpanned(loc *time.Location) int {
	from := w.From.In(loc)
	to := w.To.In(loc)
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}

// The three window policies below differ on purpose in how they fill
// missing bounds. Each call site uses exactly one of them.

// TimelineWindow resolves the window for timeline reconstruction: the last
// seven days when both bounds are omitted. Supplying only one bound is rejected.
func TimelineWindow(now time.Time, from, to *time.Time) (Window, error) {
	switch {
	case from == nil && to == nil:
		return Window{From: now.Add(-DefaultLookback), To: now}, nil
	case from == nil:
		return Window{}, errors.NewInvalidArgumentError("from", nil, "must be set when to is set")
	case to == nil:
		return Window{}, errors.NewInvalidArgumentError("to", nil, "must be set when from is set")
	}
	return checked(*from, *to)
}

// TodayWindow resolves the window for per-task durations and entry listings:
// today so far by default, now as the default end, and the start of the end's
// day as the default start.
func TodayWindow(now time.Time, loc *time.Location, from, to *time.Time) (Window, error) {
	switch {
	case from == nil && to == nil:
		return Window{From: StartOfDay(now, loc), To: now}, nil
	case to == nil:
		return checked(*from, now)
	case from == nil:
		return checked(StartOfDay(*to, loc), *to)
	}
	return checked(*from, *to)
}

// WeekWindow resolves the window for total work duration: the last seven
// days by default, and seven days forward or back from a single given bound.
func WeekWindow(now time.Time, from, to *time.Time) (Window, error) {
	switch {
	case from == nil && to == nil:
		return Window{From: now.Add(-DefaultLookback), To: now}, nil
	case to == nil:
		return checked(*from, from.Add(DefaultLookback))
	case from == nil:
		return checked(to.Add(-DefaultLookback), *to)
	}
	return checked(*from, *to)
}

func checked(from, to time.Time) (Window, error) {
	if from.After(to) {
		return Window{}, errors.NewInvalidRangeError(from, to)
	}
	return Window{From: from, To: to}, nil
}
