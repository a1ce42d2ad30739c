package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/msomdec/user-service/internal/domain"
)

// Messages returned to callers for expected failures.
const (
	msgDuplicateEmail = "User with this email already exists."
	msgUserNotFound   = "User not found."
)

// CreateUserInput carries the fields accepted when registering a user.
// Schema validation happens before the service is called.
type CreateUserInput struct {
	Name  string
	Email string
}

// UserOutcome is the result of an operation producing a single user.
type UserOutcome = domain.Outcome[domain.User, *domain.DomainError]

// UserPageOutcome is the result of listing users.
type UserPageOutcome = domain.Outcome[domain.Page[domain.User], *domain.DomainError]

// UserService implements the user use cases on top of a UserRepository.
// Expected failures are returned as Outcome failures, never as errors.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser registers a new user unless the email is already taken.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) UserOutcome {
	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return domain.Failure[domain.User](domain.Conflict(msgDuplicateEmail))
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Failure[domain.User](internalError("find user by email", err))
	}

	user := domain.NewUser(in.Name, in.Email)

	// Create re-checks the email atomically, so a concurrent registration
	// that slipped past the lookup above still ends as a conflict.
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Failure[domain.User](domain.Conflict(msgDuplicateEmail))
		}
		return domain.Failure[domain.User](internalError("create user", err))
	}

	slog.Info("user created", "id", user.ID)
	return domain.Success[domain.User, *domain.DomainError](user)
}

// ListUsers returns one page of users in creation order. An empty store is a
// valid, successful result.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) UserPageOutcome {
	result, err := s.users.FindAll(ctx, page, limit)
	if err != nil {
		if de, ok := domain.AsDomainError(err); ok && de.Kind == domain.KindBadRequest {
			return domain.Failure[domain.Page[domain.User]](de)
		}
		return domain.Failure[domain.Page[domain.User]](internalError("list users", err))
	}
	return domain.Success[domain.Page[domain.User], *domain.DomainError](result)
}

// GetUser looks up a single user by id.
func (s *UserService) GetUser(ctx context.Context, id string) UserOutcome {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failure[domain.User](domain.NotFound(msgUserNotFound))
		}
		return domain.Failure[domain.User](internalError("get user", err))
	}
	return domain.Success[domain.User, *domain.DomainError](*user)
}

func internalError(op string, err error) *domain.DomainError {
	return domain.Internal(op).WithCause(err)
}
