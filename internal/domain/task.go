package domain

import "time"

// Task is a unit of work owned by a single user. Time entries are recorded against it.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTask creates a new active Task owned by userID.
func NewTask(userID int64, title, description string) Task {
	return Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Active:      true,
	}
}

// OwnedBy reports whether the task belongs to userID.
func (t Task) OwnedBy(userID int64) bool {
	return t.UserID == userID
}

func (t Task) String() string {
	return t.Title
}
