package repository

import (
	"context"

	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// CaseRepository defines the persistence port for Case.
// List methods join and populate entity.Case.Company so callers can rank.
type CaseRepository interface {
	Create(ctx context.Context, c *entity.Case) error
	GetByID(ctx context.Context, id int64) (*entity.Case, error)
	// FindInBatch returns the case for (company, batch), or nil.
	FindInBatch(ctx context.Context, companyID string, batchID int64) (*entity.Case, error)
	// FindStandalone returns the batchless case for (user, company), or nil.
	FindStandalone(ctx context.Context, userID, companyID string) (*entity.Case, error)
	ListByBatch(ctx context.Context, batchID int64) ([]*entity.Case, error)
	ListStandaloneByUser(ctx context.Context, userID string) ([]*entity.Case, error)
	SoftDelete(ctx context.Context, id int64) error
	// SoftDeleteByBatch stamps every live case of the batch.
	SoftDeleteByBatch(ctx context.Context, batchID int64) error
}
