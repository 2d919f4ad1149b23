package sqlite

import (
	"context"
	"strconv"

	"timetracker/internal/domain"
	"timetracker/internal/errors"
)

// CreateUser inserts user and fills in its ID and CreatedAt.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *domain.User) error {
	createdAt := r.now()
	query := `INSERT INTO users (name, email, created_at) VALUES (?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, "create user", query, user.Name, user.Email, FormatTimeForDB(createdAt))
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewConflictError("user", "email", user.Email)
		}
		return err
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", strconv.FormatInt(id, 10), id)
}

// ListUsers retrieves all users ordered by ID
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanUsers, "users")
}

// UserExists reports whether a user with id exists.
func (r *SQLiteRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, HandleDatabaseError("check user exists", err)
	}
	return exists, nil
}
