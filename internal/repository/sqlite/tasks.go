package sqlite

import (
	"context"
	"strconv"

	"timetracker/internal/domain"
	"timetracker/internal/errors"
)

// CreateTask inserts task and fills in its ID and CreatedAt.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	createdAt := r.now()
	query := `
	INSERT INTO tasks (user_id, title, description, active, created_at)
	VALUES (?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, "create task", query,
		task.UserID, task.Title, task.Description, task.Active, FormatTimeForDB(createdAt))
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			return errors.NewConflictError("task", "title", task.Title)
		case IsForeignKeyViolation(err):
			return errors.NewNotFoundError("user", strconv.FormatInt(task.UserID, 10))
		}
		return err
	}

	task.ID = id
	task.CreatedAt = createdAt
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", strconv.FormatInt(id, 10), id)
}

// ListTasks retrieves the user's tasks ordered by ID, optionally including deactivated ones.
func (r *SQLiteRepository) ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", userID)
}

// SetTaskActive flips a task's active flag.
func (r *SQLiteRepository) SetTaskActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE tasks SET active = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", strconv.FormatInt(id, 10), active, id)
}
