package api

import (
	"context"

	"timetracker/internal/domain"
)

func (a *apiImpl) StartSession(ctx context.Context, userID, taskID int64) (*TaskSession, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}
	if err := validateID("task", taskID); err != nil {
		return nil, err
	}

	entry, err := a.sessions.Start(ctx, userID, taskID)
	if err != nil {
		return nil, a.fail("start session", err)
	}
	return a.committedSession(ctx, "start session", entry), nil
}

func (a *apiImpl) StopSession(ctx context.Context, userID int64) (*TaskSession, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}

	entry, err := a.sessions.Stop(ctx, userID)
	if err != nil {
		return nil, a.fail("stop session", err)
	}
	return a.committedSession(ctx, "stop session", entry), nil
}

func (a *apiImpl) CurrentSession(ctx context.Context, userID int64) (*TaskSession, error) {
	if err := validateID("user", userID); err != nil {
		return nil, err
	}

	entry, err := a.sessions.Current(ctx, userID)
	if err != nil || entry == nil {
		return nil, a.fail("current session", err)
	}
	return a.session(ctx, entry)
}

func (a *apiImpl) session(ctx context.Context, entry *domain.TimeEntry) (*TaskSession, error) {
	task, err := a.directory.GetTask(ctx, entry.UserID, entry.TaskID)
	if err != nil {
		return nil, a.fail("load session task", err)
	}
	return a.newTaskSession(task, entry), nil
}

// committedSession describes an entry whose change is already stored. A failed
// task lookup cannot undo that change, so it is logged and Task is left nil.
func (a *apiImpl) committedSession(ctx context.Context, operation string, entry *domain.TimeEntry) *TaskSession {
	task, err := a.directory.GetTask(ctx, entry.UserID, entry.TaskID)
	if err != nil {
		a.log.Warn("session task lookup failed", "operation", operation,
			"entry_id", entry.ID, "task_id", entry.TaskID, "error", err)
		return a.newTaskSession(nil, entry)
	}
	return a.newTaskSession(task, entry)
}

func (a *apiImpl) newTaskSession(task *domain.Task, entry *domain.TimeEntry) *TaskSession {
	return &TaskSession{
		Task:      task,
		TimeEntry: entry,
		Duration:  domain.FormatDuration(entry.ElapsedSeconds(a.clock.Now())),
	}
}
