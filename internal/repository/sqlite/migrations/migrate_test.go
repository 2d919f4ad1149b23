package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	migrations, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.Up)
		assert.NotEmpty(t, m.Down)
	}
	assert.Equal(t, "create_schema", migrations[0].Name)
}

func TestRunMigrations_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	migrations, err := Load()
	require.NoError(t, err)

	applied, err := RunMigrations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), applied)

	applied, err = RunMigrations(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, applied)

	versions, err := AppliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Len(t, versions, len(migrations))
}

func TestRunMigrations_OneOpenEntryPerUser(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := RunMigrations(ctx, db)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, name, email, created_at) VALUES (1, 'Ann', 'ann@example.com', '2024-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO tasks (id, user_id, title, created_at) VALUES (1, 1, 'Docs', '2024-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)

	insertOpen := `INSERT INTO time_entries (user_id, task_id, start_time, created_at) VALUES (1, 1, ?, ?)`
	_, err = db.ExecContext(ctx, insertOpen, "2024-01-01T09:00:00.000000000Z", "2024-01-01T09:00:00.000000000Z")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insertOpen, "2024-01-01T10:00:00.000000000Z", "2024-01-01T10:00:00.000000000Z")
	assert.Error(t, err, "a second open entry for the same user must be rejected")
}

func TestRunMigrations_RejectsEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := RunMigrations(ctx, db)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, name, email, created_at) VALUES (1, 'Ann', 'ann@example.com', 'x')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO tasks (id, user_id, title, created_at) VALUES (1, 1, 'Docs', 'x')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO time_entries (user_id, task_id, start_time, end_time, created_at) VALUES (1, 1, ?, ?, 'x')`,
		"2024-01-01T10:00:00.000000000Z", "2024-01-01T09:00:00.000000000Z")
	assert.Error(t, err)
}

func TestExtractVersionAndName(t *testing.T) {
	assert.Equal(t, 12, extractVersion("000012_add_index.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
	assert.Equal(t, "add_index", extractName("000012_add_index.up.sql"))
}
