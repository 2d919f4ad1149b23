package cli

import (
	"context"
	"fmt"
	"strings"

	"timetracker/internal/api"
	"timetracker/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app *App
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app}
}

// Execute starts the task named by args, given as an ID or a title.
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidArgumentError("task", "", "usage: tt start <task id | title>")
	}
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}

	task, err := c.app.resolveTask(ctx, userID, strings.Join(args, " "))
	if err != nil {
		return c.app.errorHandler.Handle("start task", err)
	}

	previous, err := c.app.api.CurrentSession(ctx, userID)
	if err != nil {
		return c.app.errorHandler.Handle("start task", err)
	}

	session, err := c.app.api.StartSession(ctx, userID, task.ID)
	if err != nil {
		return c.app.errorHandler.Handle("start task", err)
	}

	if c.app.jsonOutput {
		return c.app.printJSON(session)
	}
	if previous != nil {
		fmt.Fprintf(c.app.out, "Stopped %s\n", sessionTitle(previous))
	}
	fmt.Fprintf(c.app.out, "Started %s at %s\n", sessionTitle(session), c.app.formatTime(session.TimeEntry.StartTime))
	return nil
}

// StopCommand handles the stop command
type StopCommand struct {
	app *App
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app}
}

// Execute stops the running session.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}

	session, err := c.app.api.StopSession(ctx, userID)
	if err != nil {
		return c.app.errorHandler.Handle("stop session", err)
	}

	if c.app.jsonOutput {
		return c.app.printJSON(session)
	}
	fmt.Fprintf(c.app.out, "Stopped %s after %s\n", sessionTitle(session), session.Duration)
	return nil
}

// StatusCommand handles the status command
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute shows the running session, if any.
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}

	session, err := c.app.api.CurrentSession(ctx, userID)
	if err != nil {
		return c.app.errorHandler.Handle("get status", err)
	}

	if c.app.jsonOutput {
		return c.app.printJSON(struct {
			Running bool             `json:"running"`
			Session *api.TaskSession `json:"session,omitempty"`
		}{Running: session != nil, Session: session})
	}

	if session == nil {
		fmt.Fprintln(c.app.out, "No active session.")
		return nil
	}
	fmt.Fprintln(c.app.out, "Running:")
	fmt.Fprintf(c.app.out, "  Task: %s (#%d)\n", sessionTitle(session), session.TimeEntry.TaskID)
	fmt.Fprintf(c.app.out, "  Since: %s\n", c.app.formatTime(session.TimeEntry.StartTime))
	fmt.Fprintf(c.app.out, "  Elapsed: %s\n", session.Duration)
	return nil
}
