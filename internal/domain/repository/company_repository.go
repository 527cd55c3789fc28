package repository

import (
	"context"

	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// CompanyRepository defines the persistence port for Company.
// All reads exclude soft-deleted rows.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	// Update overwrites the financial snapshot in place.
	Update(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByVAT looks up by the normalized VAT number (the natural key).
	GetByVAT(ctx context.Context, vatNumber string) (*entity.Company, error)
	SearchByName(ctx context.Context, query string, limit int) ([]*entity.Company, error)
}
