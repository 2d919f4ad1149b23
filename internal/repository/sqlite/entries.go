package sqlite

import (
	"context"
	"database/sql"
	"time"

	"timetracker/internal/domain"
	"timetracker/internal/errors"
)

// GetOpenEntry returns the user's open entry, or nil if there is none.
func (r *SQLiteRepository) GetOpenEntry(ctx context.Context, userID int64) (*domain.TimeEntry, error) {
	return getOpenEntry(ctx, r.db, userID)
}

func getOpenEntry(ctx context.Context, q querier, userID int64) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = ? AND end_time IS NULL`
	return QueryOptional(ctx, q, query, ScanTimeEntry, "time entry", userID)
}

// StartEntry closes the user's open entry (if any) at now and opens a new
// entry for taskID starting at now, in one transaction. It returns the new
// entry and the entry that was closed, which is nil when nothing was running.
func (r *SQLiteRepository) StartEntry(ctx context.Context, userID, taskID int64, now time.Time) (started, closed *domain.TimeEntry, err error) {
	err = r.withTx(ctx, "start entry", func(tx *sql.Tx) error {
		open, err := getOpenEntry(ctx, tx, userID)
		if err != nil {
			return err
		}
		if open != nil {
			if _, err := closeEntry(ctx, tx, open.ID, now); err != nil {
				return err
			}
			stopped := open.Stop(now)
			closed = &stopped
		}

		entry := domain.NewTimeEntry(userID, taskID, now)
		entry.CreatedAt = now
		query := `
		INSERT INTO time_entries (user_id, task_id, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?)`
		id, err := ExecuteWithLastInsertID(ctx, tx, "create time entry", query,
			entry.UserID, entry.TaskID, FormatTimeForDB(entry.StartTime),
			FormatTimePtrForDB(entry.EndTime), FormatTimeForDB(entry.CreatedAt))
		if err != nil {
			if IsUniqueViolation(err) {
				return errors.NewConflictError("open time entry", "user_id", userID)
			}
			return err
		}
		entry.ID = id
		started = &entry
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return started, closed, nil
}

// StopOpenEntry closes the user's open entry at end and returns it, or nil
// if the user had nothing running.
func (r *SQLiteRepository) StopOpenEntry(ctx context.Context, userID int64, end time.Time) (*domain.TimeEntry, error) {
	var stopped *domain.TimeEntry
	err := r.withTx(ctx, "stop entry", func(tx *sql.Tx) error {
		open, err := getOpenEntry(ctx, tx, userID)
		if err != nil || open == nil {
			return err
		}
		if _, err := closeEntry(ctx, tx, open.ID, end); err != nil {
			return err
		}
		entry := open.Stop(end)
		stopped = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stopped, nil
}

// CloseEntry sets end on the entry if it is still open. It reports whether a
// row was changed, so closing an already-closed entry is a no-op.
func (r *SQLiteRepository) CloseEntry(ctx context.Context, id int64, end time.Time) (bool, error) {
	return closeEntry(ctx, r.db, id, end)
}

func closeEntry(ctx context.Context, q querier, id int64, end time.Time) (bool, error) {
	query := `UPDATE time_entries SET end_time = ? WHERE id = ? AND end_time IS NULL`
	result, err := q.ExecContext(ctx, query, FormatTimeForDB(end), id)
	if err != nil {
		return false, HandleDatabaseError("close time entry", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}
	return rows > 0, nil
}

// ListEntriesInRange returns the user's entries whose start lies in
// [from, to], ordered by start time.
func (r *SQLiteRepository) ListEntriesInRange(ctx context.Context, userID int64, from, to time.Time) ([]*domain.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE user_id = ? AND start_time >= ? AND start_time <= ?
	ORDER BY start_time ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries",
		userID, FormatTimeForDB(from), FormatTimeForDB(to))
}

// ListOpenEntries returns every open entry across all users, oldest first.
func (r *SQLiteRepository) ListOpenEntries(ctx context.Context) ([]*domain.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE end_time IS NULL
	ORDER BY start_time ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "open time entries")
}

// FirstEntryStart returns the start of the user's earliest entry for taskID
// across all time, or nil if the task has no entries.
func (r *SQLiteRepository) FirstEntryStart(ctx context.Context, userID, taskID int64) (*time.Time, error) {
	var start sql.NullString
	query := `SELECT MIN(start_time) FROM time_entries WHERE user_id = ? AND task_id = ?`
	if err := r.db.QueryRowContext(ctx, query, userID, taskID).Scan(&start); err != nil {
		return nil, HandleDatabaseError("query first time entry", err)
	}
	t, err := ParseNullTimeFromDB(start)
	if err != nil {
		return nil, HandleDatabaseError("parse first time entry", err)
	}
	return t, nil
}

// DeleteUserEntries removes every time entry belonging to userID and returns how many were deleted.
func (r *SQLiteRepository) DeleteUserEntries(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE user_id = ?`, userID)
	if err != nil {
		return 0, HandleDatabaseError("delete time entries", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}
	return n, nil
}
