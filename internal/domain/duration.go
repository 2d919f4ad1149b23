package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatDuration renders seconds as HH:MM. Hours are not capped at 24,
// leftover seconds are dropped, and negative input renders as 00:00.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ParseDuration reads an HH:MM string produced by FormatDuration back into seconds.
func ParseDuration(s string) (int64, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("duration %q: expected HH:MM", s)
	}
	hours, err := parseDigits(h)
	if err != nil || hours > math.MaxInt64/3600-1 {
		return 0, fmt.Errorf("duration %q: invalid hours", s)
	}
	minutes, err := parseDigits(m)
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("duration %q: invalid minutes", s)
	}
	return hours*3600 + minutes*60, nil
}

// parseDigits accepts only ASCII digits, so signs and spaces are rejected.
func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	v, err := strconv.ParseUint(s, 10, 63)
	return int64(v), err
}
