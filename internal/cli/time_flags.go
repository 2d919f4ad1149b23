package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/errors"
)

var shorthandPattern = regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)

// parseTimeShorthand parses time shorthand like "30m", "2h", "1d", etc.
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := shorthandPattern.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, errors.NewInvalidArgumentError("last", shorthand, "expected a number followed by m, h, d, w, mo or y")
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, errors.NewInvalidArgumentError("last", shorthand, "number out of range")
	}

	var unit time.Duration
	switch matches[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	case "mo":
		unit = 30 * 24 * time.Hour
	case "y":
		unit = 365 * 24 * time.Hour
	}
	if value > math.MaxInt64/int64(unit) {
		return 0, errors.NewInvalidArgumentError("last", shorthand, "duration too large")
	}
	return time.Duration(value) * unit, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTimeFlag reads an absolute time in loc. A bare HH:MM means that time today.
func parseTimeFlag(field, s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
		today := now.In(loc)
		return time.Date(today.Year(), today.Month(), today.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, errors.NewInvalidArgumentError(field, s, "expected YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC3339 or HH:MM")
}

// rangeFlags are the --from, --to and --last flags shared by the query commands.
type rangeFlags struct {
	from string
	to   string
	last string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "window start (YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC3339 or HH:MM)")
	cmd.Flags().StringVar(&f.to, "to", "", "window end (same formats as --from)")
	cmd.Flags().StringVar(&f.last, "last", "", "window ending now, e.g. 30m, 2h, 1d, 2w")
}

// resolve turns the flags into optional bounds. Unset bounds stay nil so the
// services apply their own defaults.
func (f rangeFlags) resolve(now time.Time, loc *time.Location) (from, to *time.Time, err error) {
	if f.last != "" {
		if f.from != "" || f.to != "" {
			return nil, nil, errors.NewInvalidArgumentError("last", f.last, "cannot be combined with --from or --to")
		}
		d, err := parseTimeShorthand(f.last)
		if err != nil {
			return nil, nil, err
		}
		start := now.Add(-d)
		return &start, &now, nil
	}

	if f.from != "" {
		t, err := parseTimeFlag("from", f.from, now, loc)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if f.to != "" {
		t, err := parseTimeFlag("to", f.to, now, loc)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
