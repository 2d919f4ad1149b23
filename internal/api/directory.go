package api

import (
	"context"
	"fmt"

	"timetracker/internal/domain"
	"timetracker/internal/errors"
	"timetracker/internal/services"
)

func (a *apiImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	user, err := a.directory.CreateUser(ctx, services.CreateUserRequest{Name: name, Email: email})
	return user, a.fail("create user", err)
}

func (a *apiImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := validateID("user", id); err != nil {
		return nil, err
	}
	user, err := a.directory.GetUser(ctx, id)
	return user, a.fail("get user", err)
}

func (a *apiImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := a.directory.ListUsers(ctx)
	return users, a.fail("list users", err)
}

func (a *apiImpl) CreateTask(ctx context.Context, userID int64, title, description string) (*domain.Task, error) {
	task, err := a.directory.CreateTask(ctx, services.CreateTaskRequest{
		UserID:      userID,
		Title:       title,
		Description: description,
	})
	return task, a.fail("create task", err)
}

func (a *apiImpl) GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	if err := validateID("task", taskID); err != nil {
		return nil, err
	}
	task, err := a.directory.GetTask(ctx, userID, taskID)
	return task, a.fail("get task", err)
}

func (a *apiImpl) ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	tasks, err := a.directory.ListTasks(ctx, userID, includeInactive)
	return tasks, a.fail("list tasks", err)
}

func (a *apiImpl) SetTaskActive(ctx context.Context, userID, taskID int64, active bool) (*domain.Task, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	if err := validateID("task", taskID); err != nil {
		return nil, err
	}
	task, err := a.directory.SetTaskActive(ctx, userID, taskID, active)
	return task, a.fail("set task active", err)
}

func validateID(kind string, id int64) error {
	if id <= 0 {
		return errors.NewValidationError(fmt.Sprintf("%s ID must be positive", kind), nil).
			WithContext("field", kind+"_id").
			WithContext("value", id)
	}
	return nil
}
