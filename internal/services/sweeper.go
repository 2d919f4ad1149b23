package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"timetracker/internal/clock"
	"timetracker/internal/logging"
)

// SweepResult summarises one auto-completion run.
type SweepResult struct {
	RunID       string    `json:"run_id"`
	RanAt       time.Time `json:"ran_at"`
	Checked     int       `json:"checked"`
	Closed      int       `json:"closed"`
	AlreadyDone int       `json:"already_done"`
	ClosedIDs   []int64   `json:"closed_ids,omitempty"`
}

// Sweeper closes entries left open past the end of the day they started on.
type Sweeper struct {
	entries  EntryStore
	clock    clock.Clock
	settings Settings
	log      *logging.Logger
}

// NewSweeper creates a new Sweeper
func NewSweeper(entries EntryStore, clk clock.Clock, settings Settings, log *logging.Logger) *Sweeper {
	return &Sweeper{
		entries:  entries,
		clock:    clk,
		settings: settings,
		log:      log.With("component", "sweeper"),
	}
}

// Run closes every open entry whose start date is before today, setting its
// end to 23:59 of the start date. Entries started today are left running.
// Running it again closes nothing new. The run stops at the first storage
// failure; entries not yet closed are picked up by the next run.
func (s *Sweeper) Run(ctx context.Context) (*SweepResult, error) {
	now := s.clock.Now()
	loc := s.settings.location()
	result := &SweepResult{RunID: uuid.NewString(), RanAt: now}
	log := s.log.With("run_id", result.RunID)

	open, err := s.entries.ListOpenEntries(ctx)
	if err != nil {
		log.Error("auto-completion failed to list open entries", "error", err)
		return result, err
	}
	result.Checked = len(open)

	for _, entry := range open {
		if !entry.StartedBeforeDay(now, loc) {
			continue
		}

		end := entry.AutoCompletionEnd(loc)
		closed, err := s.entries.CloseEntry(ctx, entry.ID, end)
		if err != nil {
			log.Error("auto-completion failed to close entry", "entry_id", entry.ID, "user_id", entry.UserID, "error", err)
			return result, err
		}
		if !closed {
			result.AlreadyDone++
			continue
		}

		result.Closed++
		result.ClosedIDs = append(result.ClosedIDs, entry.ID)
		log.Info("auto-completed entry", "entry_id", entry.ID, "user_id", entry.UserID, "start", entry.StartTime, "end", end)
	}

	log.Info("auto-completion finished", "checked", result.Checked, "closed", result.Closed)
	return result, nil
}
