package debtor

import (
	"context"

	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// VisitListGenerator renders a ranked batch as a printable visit list.
// Implemented in infrastructure/pdf with Maroto.
type VisitListGenerator interface {
	VisitList(ctx context.Context, batch *entity.DebtorBatch, cases []*entity.Case) ([]byte, error)
}

// PDFUseCase exports a batch visit list as PDF.
type PDFUseCase struct {
	manager   *UseCase
	generator VisitListGenerator
}

// NewPDFUseCase builds the export use case.
func NewPDFUseCase(manager *UseCase, generator VisitListGenerator) *PDFUseCase {
	return &PDFUseCase{manager: manager, generator: generator}
}

// BatchVisitList loads the batch (same ownership rules as GetBatch), ranks
// its cases and renders the PDF.
func (uc *PDFUseCase) BatchVisitList(ctx context.Context, batchID int64, userID string) ([]byte, error) {
	batch, cases, err := uc.manager.rankedBatch(ctx, batchID, userID)
	if err != nil {
		return nil, err
	}
	return uc.generator.VisitList(ctx, batch, cases)
}
