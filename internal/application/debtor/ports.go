package debtor

import (
	"context"

	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

// TxRunner executes a callback with batch/case repositories bound to one
// transaction: both writes commit or neither does. The implementation lives
// in infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batches repository.BatchRepository,
		cases repository.CaseRepository,
	) error) error
}

// Enricher is the slice of the enrichment service bulk import needs.
// Satisfied by *enrichment.UseCase.
type Enricher interface {
	FetchAndUpsert(ctx context.Context, rawVAT string) (*entity.Company, error)
}
