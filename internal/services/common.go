package services

import (
	"context"
	"strconv"

	"timetracker/internal/domain"
	"timetracker/internal/errors"
)

func ensureUser(ctx context.Context, dir Directory, userID int64) error {
	exists, err := dir.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewNotFoundError("user", strconv.FormatInt(userID, 10))
	}
	return nil
}

// ownedTask loads taskID and hides tasks owned by someone else behind the
// same not found error as a missing task.
func ownedTask(ctx context.Context, dir Directory, userID, taskID int64) (*domain.Task, error) {
	task, err := dir.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(userID) {
		return nil, errors.NewNotFoundError("task", strconv.FormatInt(taskID, 10))
	}
	return task, nil
}
