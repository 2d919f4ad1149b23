package services

import (
	"context"
	"strings"

	"timetracker/internal/domain"
	"timetracker/internal/logging"
	"timetracker/internal/validation"
)

// CreateUserRequest is the input for DirectoryService.CreateUser.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,notblank,min=2,max=50"`
	Email string `json:"email" validate:"required,email,max=254"`
}

// CreateTaskRequest is the input for DirectoryService.CreateTask.
type CreateTaskRequest struct {
	UserID      int64  `json:"user_id" validate:"gt=0"`
	Title       string `json:"title" validate:"required,notblank,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type directoryServiceImpl struct {
	store     DirectoryStore
	validator *validation.Validator
	log       *logging.Logger
}

// NewDirectoryService creates a new DirectoryService instance
func NewDirectoryService(store DirectoryStore, validator *validation.Validator, log *logging.Logger) DirectoryService {
	return &directoryServiceImpl{
		store:     store,
		validator: validator,
		log:       log.With("component", "directory"),
	}
}

func (s *directoryServiceImpl) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user := domain.NewUser(req.Name, req.Email)
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	s.log.Info("user created", "user_id", user.ID)
	return &user, nil
}

func (s *directoryServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *directoryServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// CreateTask adds an active task for an existing user. Titles are unique per user.
func (s *directoryServiceImpl) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.store, req.UserID); err != nil {
		return nil, err
	}

	task := domain.NewTask(req.UserID, req.Title, req.Description)
	if err := s.store.CreateTask(ctx, &task); err != nil {
		return nil, err
	}
	s.log.Info("task created", "user_id", task.UserID, "task_id", task.ID)
	return &task, nil
}

// GetTask returns one of the user's tasks. Other users' tasks are reported as not found.
func (s *directoryServiceImpl) GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	return ownedTask(ctx, s.store, userID, taskID)
}

func (s *directoryServiceImpl) ListTasks(ctx context.Context, userID int64, includeInactive bool) ([]*domain.Task, error) {
	if err := ensureUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	return s.store.ListTasks(ctx, userID, includeInactive)
}

// SetTaskActive activates or deactivates one of the user's tasks. Existing
// entries are unaffected.
func (s *directoryServiceImpl) SetTaskActive(ctx context.Context, userID, taskID int64, active bool) (*domain.Task, error) {
	task, err := ownedTask(ctx, s.store, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Active == active {
		return task, nil
	}
	if err := s.store.SetTaskActive(ctx, taskID, active); err != nil {
		return nil, err
	}
	task.Active = active
	s.log.Info("task status changed", "user_id", userID, "task_id", taskID, "active", active)
	return task, nil
}
