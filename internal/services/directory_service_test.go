package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/errors"
	"timetracker/internal/validation"
)

func newDirectory(f *fixture) DirectoryService {
	return NewDirectoryService(f.repo, validation.New(), f.log)
}

func TestDirectoryService_CreateUser(t *testing.T) {
	tests := []struct {
		name           string
		req            CreateUserRequest
		wantEmail      string
		errorAssertion func(t *testing.T, err error)
		failedFields   []string
	}{
		{
			name:      "should normalise email and trim name",
			req:       CreateUserRequest{Name: "  Ada Lovelace ", Email: " Ada@Example.COM "},
			wantEmail: "ada@example.com",
		},
		{
			name:           "should reject blank name",
			req:            CreateUserRequest{Name: "   ", Email: "blank@example.com"},
			errorAssertion: assertErrorType(errors.ErrorTypeValidation),
			failedFields:   []string{"name"},
		},
		{
			name:           "should reject malformed email",
			req:            CreateUserRequest{Name: "Bob", Email: "not-an-email"},
			errorAssertion: assertErrorType(errors.ErrorTypeValidation),
			failedFields:   []string{"email"},
		},
		{
			name:           "should report every failed field",
			req:            CreateUserRequest{Name: "x", Email: ""},
			errorAssertion: assertErrorType(errors.ErrorTypeValidation),
			failedFields:   []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, day)

			user, err := newDirectory(f).CreateUser(context.Background(), tt.req)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				var fields []string
				for _, fe := range validation.FieldErrors(err) {
					fields = append(fields, fe.Field)
				}
				assert.ElementsMatch(t, tt.failedFields, fields)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, strings.TrimSpace(tt.req.Name), user.Name)
			assert.Equal(t, tt.wantEmail, user.Email)
		})
	}
}

func TestDirectoryService_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, day)
	dir := newDirectory(f)

	_, err := dir.CreateUser(ctx, CreateUserRequest{Name: "First", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = dir.CreateUser(ctx, CreateUserRequest{Name: "Second", Email: "DUP@example.com"})
	assertErrorType(errors.ErrorTypeConflict)(t, err)
}

func TestDirectoryService_Users(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, day)
	dir := newDirectory(f)

	a, err := dir.CreateUser(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = dir.CreateUser(ctx, CreateUserRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	got, err := dir.GetUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	users, err := dir.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = dir.GetUser(ctx, 9999)
	assertErrorType(errors.ErrorTypeNotFound)(t, err)
}

func TestDirectoryService_CreateTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, day)
	dir := newDirectory(f)
	user := f.user(t, "tasks@example.com")

	task, err := dir.CreateTask(ctx, CreateTaskRequest{UserID: user.ID, Title: "  Write docs ", Description: " chapter 1 "})
	require.NoError(t, err)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, "chapter 1", task.Description)
	assert.True(t, task.Active)

	_, err = dir.CreateTask(ctx, CreateTaskRequest{UserID: user.ID, Title: "Write docs"})
	assertErrorType(errors.ErrorTypeConflict)(t, err)

	_, err = dir.CreateTask(ctx, CreateTaskRequest{UserID: user.ID, Title: "ab"})
	assertErrorType(errors.ErrorTypeValidation)(t, err)

	_, err = dir.CreateTask(ctx, CreateTaskRequest{UserID: 0, Title: "Valid title"})
	assertErrorType(errors.ErrorTypeValidation)(t, err)

	_, err = dir.CreateTask(ctx, CreateTaskRequest{UserID: 4242, Title: "Valid title"})
	assertErrorType(errors.ErrorTypeNotFound)(t, err)

	// Titles are only unique per user.
	other := f.user(t, "other@example.com")
	_, err = dir.CreateTask(ctx, CreateTaskRequest{UserID: other.ID, Title: "Write docs"})
	assert.NoError(t, err)
}

func TestDirectoryService_TaskActivation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, day)
	dir := newDirectory(f)
	user := f.user(t, "active@example.com")
	intruder := f.user(t, "intruder@example.com")
	keep := f.task(t, user.ID, "Keep")
	retire := f.task(t, user.ID, "Retire")

	updated, err := dir.SetTaskActive(ctx, user.ID, retire.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	active, err := dir.ListTasks(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	all, err := dir.ListTasks(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	again, err := dir.SetTaskActive(ctx, user.ID, retire.ID, false)
	require.NoError(t, err)
	assert.False(t, again.Active)

	_, err = dir.SetTaskActive(ctx, intruder.ID, keep.ID, false)
	assertErrorType(errors.ErrorTypeNotFound)(t, err)

	_, err = dir.GetTask(ctx, intruder.ID, keep.ID)
	assertErrorType(errors.ErrorTypeNotFound)(t, err)

	got, err := dir.GetTask(ctx, user.ID, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)

	_, err = dir.ListTasks(ctx, 31337, true)
	assertErrorType(errors.ErrorTypeNotFound)(t, err)

	restored, err := dir.SetTaskActive(ctx, user.ID, retire.ID, true)
	require.NoError(t, err)
	assert.True(t, restored.Active)
}
