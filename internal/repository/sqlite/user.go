package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/user-service/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
// Insertion order is tracked by the seq column.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	if err := domain.ValidatePageBounds(page, limit); err != nil {
		return domain.Page[domain.User]{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("count users: %w", err)
	}

	users := []domain.User{}
	offset, ok := domain.PageOffset(total, page, limit)
	if !ok {
		return domain.NewPage(users, total, page, limit)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, email FROM users ORDER BY seq LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return domain.Page[domain.User]{}, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("iterate users: %w", err)
	}

	return domain.NewPage(users, total, page, limit)
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		user.ID, user.Name, user.Email,
	)
	if err != nil {
		if isUniqueEmailError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.Email,
	)
	if err != nil {
		if isUniqueEmailError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// isUniqueEmailError checks if the error is a SQLite unique constraint
// violation on users.email.
func isUniqueEmailError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "users.email")
}
