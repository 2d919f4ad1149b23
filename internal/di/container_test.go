package di

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/config"
	"timetracker/internal/di/providers"
	"timetracker/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Database.Dir = t.TempDir()
	cfg.Database.Filename = "tt.db"
	cfg.Tracking.Timezone = "UTC"
	cfg.Log.Level = "debug"
	cfg.Application.Timeout = 5 * time.Second
	return cfg
}

func TestBootstrap(t *testing.T) {
	injector := NewContainer(testConfig(t), &bytes.Buffer{})
	t.Cleanup(func() { _ = injector.Shutdown() })

	require.NoError(t, Bootstrap(injector))

	job := do.MustInvoke[*providers.SweeperJob](injector)
	assert.Zero(t, job.Runs())
}

func TestRuntime_EndToEnd(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	cfg := testConfig(t)

	rt, err := NewRuntime(cfg, &logs)
	require.NoError(t, err)

	a := rt.API()
	user, err := a.CreateUser(ctx, "Katherine Johnson", "katherine@example.com")
	require.NoError(t, err)
	task, err := a.CreateTask(ctx, user.ID, "Trajectory", "")
	require.NoError(t, err)
	_, err = a.StartSession(ctx, user.ID, task.ID)
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	assert.FileExists(t, filepath.Join(cfg.Database.Dir, "tt.db"))
	assert.Contains(t, logs.String(), "session started")

	// A second runtime over the same file sees the running session.
	rt, err = NewRuntime(cfg, &logs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	current, err := rt.API().CurrentSession(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Trajectory", current.Task.Title)
}

func TestRuntime_StartScheduler(t *testing.T) {
	t.Run("runs the sweep on start", func(t *testing.T) {
		var logs bytes.Buffer
		cfg := testConfig(t)
		cfg.Sweeper.RunOnStart = true

		rt, err := NewRuntime(cfg, &logs)
		require.NoError(t, err)
		t.Cleanup(func() { _ = rt.Close() })

		require.NoError(t, rt.StartScheduler(context.Background()))
		job := do.MustInvoke[*providers.SweeperJob](rt.injector)
		require.Eventually(t, func() bool { return job.Runs() == 1 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("does nothing when disabled", func(t *testing.T) {
		var logs bytes.Buffer
		cfg := testConfig(t)
		cfg.Sweeper.Enabled = false

		rt, err := NewRuntime(cfg, &logs)
		require.NoError(t, err)
		t.Cleanup(func() { _ = rt.Close() })

		require.NoError(t, rt.StartScheduler(context.Background()))
		assert.Contains(t, logs.String(), "auto-completion disabled")
	})
}

func TestSettings_UnknownTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tracking.Timezone = "Mars/Olympus_Mons"

	injector := NewContainer(cfg, &bytes.Buffer{})
	t.Cleanup(func() { _ = injector.Shutdown() })

	_, err := do.Invoke[services.Settings](injector)

	assert.Error(t, err)
}
