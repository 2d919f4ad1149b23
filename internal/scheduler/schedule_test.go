package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyAt_Next(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name     string
		schedule DailyAt
		after    time.Time
		want     time.Time
	}{
		{
			name:     "later the same day",
			schedule: DailyAt{Hour: 23, Minute: 59, Location: time.UTC},
			after:    time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			want:     time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
		},
		{
			name:     "exactly at the slot moves to tomorrow",
			schedule: DailyAt{Hour: 23, Minute: 59, Location: time.UTC},
			after:    time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
			want:     time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC),
		},
		{
			name:     "past the slot rolls over the month",
			schedule: DailyAt{Hour: 0, Minute: 5, Location: time.UTC},
			after:    time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
			want:     time.Date(2024, 2, 1, 0, 5, 0, 0, time.UTC),
		},
		{
			name:     "slot is taken in the schedule's location",
			schedule: DailyAt{Hour: 1, Minute: 0, Location: plus2},
			after:    time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC),
			want:     time.Date(2024, 1, 2, 1, 0, 0, 0, plus2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.schedule.Next(tt.after)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}
