package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

// Ensure UserRepo implements the port.
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo PostgreSQL adapter for users.
type UserRepo struct {
	db querier
}

// NewUserRepository builds the adapter.
func NewUserRepository(db querier) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `user_id, username, user_name, user_email, COALESCE(role, ''), created_at`

// Create persists a new user. Unique collisions that race past the use
// case's pre-checks map to the matching domain error by constraint name.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (user_id, username, user_name, user_email, role, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`
	_, err := r.db.Exec(ctx, query, u.ID, u.Username, u.Name, u.Email, u.Role, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(violatedConstraint(err), "email") {
				return domain.ErrEmailAlreadyExists
			}
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the user or nil.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "user_id", id)
}

// GetByUsername returns the user or nil.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail returns the user or nil.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "user_email", email)
}

func (r *UserRepo) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	var u entity.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Username, &u.Name, &u.Email, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return &u, nil
}

// Delete removes the user. Batches and cases keep existing with user_id
// nulled by the schema's ON DELETE SET NULL.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
