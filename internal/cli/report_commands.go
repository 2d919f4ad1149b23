package cli

import (
	"context"
	"fmt"
	"strconv"

	"timetracker/internal/domain"
)

// EntriesCommand lists raw time entries, today's by default.
type EntriesCommand struct {
	app    *App
	window rangeFlags
}

// NewEntriesCommand creates a new entries command handler
func NewEntriesCommand(app *App, window rangeFlags) *EntriesCommand {
	return &EntriesCommand{app: app, window: window}
}

func (c *EntriesCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}
	from, to, err := c.window.resolve(c.app.clock.Now(), c.app.loc)
	if err != nil {
		return err
	}

	entries, err := c.app.api.ListEntries(ctx, userID, from, to)
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No entries found")
		return nil
	}

	titles, err := c.app.taskTitles(ctx, userID)
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}

	now := c.app.clock.Now()
	w := c.app.table()
	fmt.Fprintln(w, "ID\tTASK\tSTART\tEND\tDURATION")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, titles[e.TaskID], c.app.formatTime(e.StartTime), c.app.formatEnd(e),
			domain.FormatDuration(e.ElapsedSeconds(now)))
	}
	return w.Flush()
}

// DurationsCommand shows time per task, today's by default.
type DurationsCommand struct {
	app    *App
	window rangeFlags
}

// NewDurationsCommand creates a new durations command handler
func NewDurationsCommand(app *App, window rangeFlags) *DurationsCommand {
	return &DurationsCommand{app: app, window: window}
}

func (c *DurationsCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}
	from, to, err := c.window.resolve(c.app.clock.Now(), c.app.loc)
	if err != nil {
		return err
	}

	rows, err := c.app.api.TaskDurations(ctx, userID, from, to)
	if err != nil {
		return c.app.errorHandler.Handle("compute task durations", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(c.app.out, "No tracked time")
		return nil
	}

	w := c.app.table()
	fmt.Fprintln(w, "TASK\tDURATION\tFIRST TRACKED")
	for _, r := range rows {
		first := "-"
		if r.FirstEntryTime != nil {
			first = c.app.formatTime(*r.FirstEntryTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Title, r.Duration, first)
	}
	return w.Flush()
}

// IntervalsCommand shows the gap-filled timeline, the last seven days by default.
type IntervalsCommand struct {
	app    *App
	window rangeFlags
}

// NewIntervalsCommand creates a new intervals command handler
func NewIntervalsCommand(app *App, window rangeFlags) *IntervalsCommand {
	return &IntervalsCommand{app: app, window: window}
}

func (c *IntervalsCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}
	from, to, err := c.window.resolve(c.app.clock.Now(), c.app.loc)
	if err != nil {
		return err
	}

	intervals, err := c.app.api.TimeIntervals(ctx, userID, from, to)
	if err != nil {
		return c.app.errorHandler.Handle("build timeline", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(intervals)
	}

	w := c.app.table()
	fmt.Fprintln(w, "START\tEND\tKIND\tLABEL\tDURATION")
	for _, in := range intervals {
		kind := "idle"
		if in.IsWork {
			kind = "work"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.app.formatTime(in.Start), c.app.formatTime(in.End), kind, in.Label, in.Duration)
	}
	return w.Flush()
}

// TotalCommand shows total work, the last seven days by default.
type TotalCommand struct {
	app    *App
	window rangeFlags
}

// NewTotalCommand creates a new total command handler
func NewTotalCommand(app *App, window rangeFlags) *TotalCommand {
	return &TotalCommand{app: app, window: window}
}

func (c *TotalCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}
	from, to, err := c.window.resolve(c.app.clock.Now(), c.app.loc)
	if err != nil {
		return err
	}

	total, err := c.app.api.TotalWorkDuration(ctx, userID, from, to)
	if err != nil {
		return c.app.errorHandler.Handle("compute total", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(total)
	}

	fmt.Fprintf(c.app.out, "Total: %s over %s (%s to %s)\n",
		total.Duration, pluralDays(total.Days), c.app.formatTime(total.From), c.app.formatTime(total.To))
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
