package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

// CompanyUseCase read-side operations over stored company snapshots.
// Writes go through the enrichment service exclusively.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase builds the use case with the persistence port.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Search finds companies by name substring. VAT-shaped queries are routed to
// enrichment by the handler before reaching this method.
func (uc *CompanyUseCase) Search(ctx context.Context, query string, limit int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.SearchByName(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.NewCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

// GetByID returns one company, or nil when unknown.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return dto.NewCompanyResponse(company), nil
}

// Score returns the weighted solvency score, null when a component metric is
// missing. Returns (nil, nil) for unknown companies.
func (uc *CompanyUseCase) Score(ctx context.Context, id string) (*dto.ScoreResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	out := &dto.ScoreResponse{CompanyID: company.ID}
	if score, ok := company.SolvencyScore(); ok {
		out.Score = decimal.NullDecimal{Decimal: score, Valid: true}
	}
	return out, nil
}
