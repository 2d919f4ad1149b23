package cli

import (
	"context"
	"fmt"

	"timetracker/internal/errors"
)

// ClearCommand deletes all of the acting user's time entries.
type ClearCommand struct {
	app     *App
	confirm bool
}

func NewClearCommand(app *App, confirm bool) *ClearCommand {
	return &ClearCommand{app: app, confirm: confirm}
}

func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}
	if !c.confirm {
		return errors.NewInvalidArgumentError("yes", false, "clearing deletes every time entry; pass --yes to confirm")
	}

	deleted, err := c.app.api.ClearUserData(ctx, userID)
	if err != nil {
		return c.app.errorHandler.Handle("clear data", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(map[string]int64{"deleted": deleted})
	}
	fmt.Fprintf(c.app.out, "Deleted %d time entries\n", deleted)
	return nil
}

// SweepCommand runs auto-completion once.
type SweepCommand struct {
	app *App
}

func NewSweepCommand(app *App) *SweepCommand {
	return &SweepCommand{app: app}
}

func (c *SweepCommand) Execute(ctx context.Context, args []string) error {
	result, err := c.app.api.RunAutoCompletion(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("run auto-completion", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(result)
	}
	fmt.Fprintf(c.app.out, "Closed %d of %d open entries\n", result.Closed, result.Checked)
	return nil
}

// Scheduler starts background jobs.
type Scheduler interface {
	StartScheduler(ctx context.Context) error
}

// DaemonCommand runs the scheduled jobs until ctx is cancelled.
type DaemonCommand struct {
	app       *App
	scheduler Scheduler
}

func NewDaemonCommand(app *App, scheduler Scheduler) *DaemonCommand {
	return &DaemonCommand{app: app, scheduler: scheduler}
}

func (c *DaemonCommand) Execute(ctx context.Context, args []string) error {
	if err := c.scheduler.StartScheduler(ctx); err != nil {
		return c.app.errorHandler.Handle("start scheduler", err)
	}
	fmt.Fprintln(c.app.out, "Daemon running; press Ctrl+C to stop")
	<-ctx.Done()
	fmt.Fprintln(c.app.out, "Daemon stopped")
	return nil
}
