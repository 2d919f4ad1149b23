package cli

import (
	"context"
	"fmt"
	"strings"

	"timetracker/internal/errors"
)

// UserAddCommand registers a user.
type UserAddCommand struct {
	app *App
}

func NewUserAddCommand(app *App) *UserAddCommand {
	return &UserAddCommand{app: app}
}

// Execute expects the email last and everything before it as the name.
func (c *UserAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidArgumentError("user", strings.Join(args, " "), "usage: tt user add <name> <email>")
	}
	name := strings.Join(args[:len(args)-1], " ")
	email := args[len(args)-1]

	user, err := c.app.api.CreateUser(ctx, name, email)
	if err != nil {
		return c.app.errorHandler.Handle("create user", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(user)
	}
	fmt.Fprintf(c.app.out, "Created user %d: %s <%s>\n", user.ID, user.Name, user.Email)
	return nil
}

// UserListCommand lists users.
type UserListCommand struct {
	app *App
}

func NewUserListCommand(app *App) *UserListCommand {
	return &UserListCommand{app: app}
}

func (c *UserListCommand) Execute(ctx context.Context, args []string) error {
	users, err := c.app.api.ListUsers(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list users", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(users)
	}
	if len(users) == 0 {
		fmt.Fprintln(c.app.out, "No users found")
		return nil
	}

	w := c.app.table()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	return w.Flush()
}

// TaskAddCommand creates a task for the acting user.
type TaskAddCommand struct {
	app         *App
	description string
}

func NewTaskAddCommand(app *App, description string) *TaskAddCommand {
	return &TaskAddCommand{app: app, description: description}
}

func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidArgumentError("title", "", "usage: tt task add <title>")
	}
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}

	task, err := c.app.api.CreateTask(ctx, userID, strings.Join(args, " "), c.description)
	if err != nil {
		return c.app.errorHandler.Handle("create task", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(task)
	}
	fmt.Fprintf(c.app.out, "Created task %d: %s\n", task.ID, task.Title)
	return nil
}

// TaskListCommand lists the acting user's tasks.
type TaskListCommand struct {
	app *App
	all bool
}

func NewTaskListCommand(app *App, all bool) *TaskListCommand {
	return &TaskListCommand{app: app, all: all}
}

func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}

	tasks, err := c.app.api.ListTasks(ctx, userID, c.all)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks found")
		return nil
	}

	w := c.app.table()
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS")
	for _, t := range tasks {
		status := "active"
		if !t.Active {
			status = "inactive"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Title, status)
	}
	return w.Flush()
}

// TaskActiveCommand activates or deactivates a task.
type TaskActiveCommand struct {
	app    *App
	active bool
}

func NewTaskActiveCommand(app *App, active bool) *TaskActiveCommand {
	return &TaskActiveCommand{app: app, active: active}
}

func (c *TaskActiveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidArgumentError("task", strings.Join(args, " "), "expected exactly one task ID")
	}
	userID, err := c.app.requireUser()
	if err != nil {
		return err
	}
	taskID, err := parseID("task", args[0])
	if err != nil {
		return err
	}

	operation := "deactivate task"
	if c.active {
		operation = "activate task"
	}
	task, err := c.app.api.SetTaskActive(ctx, userID, taskID, c.active)
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}
	if c.app.jsonOutput {
		return c.app.printJSON(task)
	}

	state := "inactive"
	if task.Active {
		state = "active"
	}
	fmt.Fprintf(c.app.out, "Task %d (%s) is now %s\n", task.ID, task.Title, state)
	return nil
}
