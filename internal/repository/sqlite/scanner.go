package sqlite

import (
	"database/sql"
	"fmt"

	"timetracker/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

const timeEntryColumns = `id, user_id, task_id, start_time, end_time, created_at`

// ScanTimeEntry scans a single time entry selected with timeEntryColumns.
func ScanTimeEntry(scanner Scanner) (*domain.TimeEntry, error) {
	entry := &domain.TimeEntry{}
	var startTime, createdAt string
	var endTime sql.NullString

	err := scanner.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.TaskID,
		&startTime,
		&endTime,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, err
	}
	if entry.EndTime, err = ParseNullTimeFromDB(endTime); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if !entry.IsValid() {
		return nil, fmt.Errorf("time entry %d: stored row is inconsistent", entry.ID)
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*domain.TimeEntry, error) {
	return scanAll(rows, ScanTimeEntry)
}

const taskColumns = `id, user_id, title, description, active, created_at`

// ScanTask scans a single task selected with taskColumns.
func ScanTask(scanner Scanner) (*domain.Task, error) {
	task := &domain.Task{}
	var createdAt string

	err := scanner.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Active, &createdAt)
	if err != nil {
		return nil, err
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	return scanAll(rows, ScanTask)
}

const userColumns = `id, name, email, created_at`

// ScanUser scans a single user selected with userColumns.
func ScanUser(scanner Scanner) (*domain.User, error) {
	user := &domain.User{}
	var createdAt string

	if err := scanner.Scan(&user.ID, &user.Name, &user.Email, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*domain.User, error) {
	return scanAll(rows, ScanUser)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var items []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
