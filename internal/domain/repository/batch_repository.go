package repository

import (
	"context"

	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// BatchRepository defines the persistence port for DebtorBatch.
type BatchRepository interface {
	// Create persists the batch and fills in its generated ID.
	Create(ctx context.Context, batch *entity.DebtorBatch) error
	GetByID(ctx context.Context, id int64) (*entity.DebtorBatch, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.DebtorBatch, error)
	// SoftDelete stamps deleted_at; child cases are handled by the caller
	// inside the same transaction (see debtor.UseCase.DeleteBatch).
	SoftDelete(ctx context.Context, id int64) error
}
