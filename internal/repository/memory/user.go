// Package memory provides process-local implementations of the domain
// repositories. Data does not survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/user-service/internal/domain"
)

// UserRepository implements domain.UserRepository over an ordered slice.
// All lookups are linear scans.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository creates a repository holding copies of seed in order.
func NewUserRepository(seed ...domain.User) *UserRepository {
	return &UserRepository{users: append([]domain.User(nil), seed...)}
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByID(id); i >= 0 {
		u := r.users[i]
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByEmail(email); i >= 0 {
		u := r.users[i]
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) FindAll(_ context.Context, page, limit int) (domain.Page[domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Paginate copies the window, so nothing escapes the lock by reference.
	return domain.Paginate(r.users, page, limit)
}

func (r *UserRepository) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if j := r.indexByEmail(user.Email); j >= 0 && r.users[j].ID != user.ID {
		return domain.ErrConflict
	}
	if i := r.indexByID(user.ID); i >= 0 {
		r.users[i] = *user
		return nil
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmail(user.Email) >= 0 {
		return domain.ErrConflict
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) indexByID(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *UserRepository) indexByEmail(email string) int {
	for i := range r.users {
		if r.users[i].Email == email {
			return i
		}
	}
	return -1
}
