package domain

import (
	"context"

	"github.com/google/uuid"
)

// User represents a registered user of the application.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser returns a user with a freshly generated id.
func NewUser(name, email string) User {
	return User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
}

//go:generate mockgen -destination=mocks/mock_user_repository.go -package=mocks . UserRepository

// UserRepository defines persistence operations for users.
//
// Implementations must make Create atomic with respect to the email check:
// two concurrent Create calls with the same email must not both succeed.
type UserRepository interface {
	// FindByID returns ErrNotFound when no user has the id.
	FindByID(ctx context.Context, id string) (*User, error)
	// FindByEmail matches case-sensitively and returns ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, page, limit int) (Page[User], error)
	// Save replaces the user with the same id, or appends it. It returns
	// ErrConflict when another user already holds the email.
	Save(ctx context.Context, user *User) error
	// Create appends user unless its email is taken, returning ErrConflict.
	Create(ctx context.Context, user *User) error
}
