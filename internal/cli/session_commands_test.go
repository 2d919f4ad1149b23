package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/errors"
)

func TestStartCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("starts a task by title", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Write report")

		err := NewStartCommand(app).Execute(ctx, []string{"Write", "report"})
		require.NoError(t, err)
		assert.Equal(t, "Started Write report at 2024-03-11 09:00\n", out.String())

		running := m.open(1)
		require.NotNil(t, running)
		assert.Equal(t, int64(1), running.TaskID)
	})

	t.Run("switching reports the stopped task", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Coding")
		m.addTask(1, "Review")
		m.addEntry(1, 1, at(8, 0), nil)

		err := NewStartCommand(app).Execute(ctx, []string{"2"})
		require.NoError(t, err)
		assert.Equal(t, "Stopped Coding\nStarted Review at 2024-03-11 09:00\n", out.String())

		require.NotNil(t, m.entries[0].EndTime)
		assert.Equal(t, at(9, 0), *m.entries[0].EndTime)
	})

	t.Run("json output", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Coding")

		err := NewStartCommand(app.WithJSON(true)).Execute(ctx, []string{"Coding"})
		require.NoError(t, err)

		var got struct {
			Task struct {
				Title string `json:"title"`
			} `json:"task"`
			Duration string `json:"duration"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "Coding", got.Task.Title)
		assert.Equal(t, "00:00", got.Duration)
	})

	t.Run("error cases", func(t *testing.T) {
		app, m, _ := setupTestApp(t)
		m.addTask(1, "Coding")

		err := NewStartCommand(app).Execute(ctx, []string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tt start")

		err = NewStartCommand(app).Execute(ctx, []string{"Missing"})
		require.Error(t, err)
		assert.Equal(t, "failed to start task: task not found: Missing", err.Error())
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

		err = NewStartCommand(app.WithUser(0)).Execute(ctx, []string{"Coding"})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidArgument))
	})
}

func TestStopCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("stops the running session", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Coding")
		m.addEntry(1, 1, at(7, 45), nil)

		err := NewStopCommand(app).Execute(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "Stopped Coding after 01:15\n", out.String())
		assert.Nil(t, m.open(1))
	})

	t.Run("task could not be loaded", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Coding")
		m.addEntry(1, 1, at(7, 45), nil)
		delete(m.tasks, 1)

		err := NewStopCommand(app).Execute(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "Stopped task #1 after 01:15\n", out.String())
		assert.Nil(t, m.open(1))
	})

	t.Run("nothing running", func(t *testing.T) {
		app, _, out := setupTestApp(t)

		err := NewStopCommand(app).Execute(ctx, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrNoActiveSession)
		assert.Equal(t, "failed to stop session: no active session", err.Error())
		assert.Empty(t, out.String())
	})
}

func TestStatusCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("idle", func(t *testing.T) {
		app, _, out := setupTestApp(t)

		require.NoError(t, NewStatusCommand(app).Execute(ctx, nil))
		assert.Equal(t, "No active session.\n", out.String())
	})

	t.Run("running", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Coding")
		m.addEntry(1, 1, at(8, 30), nil)

		require.NoError(t, NewStatusCommand(app).Execute(ctx, nil))
		assert.Equal(t, "Running:\n  Task: Coding (#1)\n  Since: 2024-03-11 08:30\n  Elapsed: 00:30\n", out.String())
	})

	t.Run("json reports running flag", func(t *testing.T) {
		app, m, out := setupTestApp(t)
		m.addTask(1, "Coding")
		end := at(8, 0)
		m.addEntry(1, 1, at(7, 0), &end)

		require.NoError(t, NewStatusCommand(app.WithJSON(true)).Execute(ctx, nil))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, false, got["running"])
		assert.NotContains(t, got, "session")
	})

	t.Run("unknown user", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		err := NewStatusCommand(app.WithUser(9)).Execute(ctx, nil)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}

func TestStatusCommand_ElapsedFollowsClock(t *testing.T) {
	app, m, out := setupTestApp(t)
	m.addTask(1, "Coding")
	m.addEntry(1, 1, at(9, 0), nil)
	m.now = m.now.Add(2*time.Hour + 5*time.Minute)

	require.NoError(t, NewStatusCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "Elapsed: 02:05")
}
