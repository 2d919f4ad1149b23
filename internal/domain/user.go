package domain

import "time"

// User owns tasks and time entries.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with the given name and email.
func NewUser(name, email string) User {
	return User{
		Name:  name,
		Email: email,
	}
}
