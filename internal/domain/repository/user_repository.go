package repository

import (
	"context"

	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// UserRepository defines the persistence port for User (DIP).
// The implementation lives in infrastructure.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Delete removes the user; owning references on batches and cases are
	// nulled by the schema (ON DELETE SET NULL), never cascaded.
	Delete(ctx context.Context, id string) error
}
