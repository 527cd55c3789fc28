package debtor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// tokenOutcome result of processing one identifier.
type tokenOutcome struct {
	identifier string
	created    bool
	skipped    bool
	err        error
}

// BulkImport creates a new batch and imports every identifier from the
// uploaded text blob into it. Tokens are enriched and persisted by a small
// fixed worker pool with a per-token timeout; one failing identifier never
// aborts the run, and every success stays committed (one transaction per
// write). Duplicates inside the batch are skipped silently, not errors.
// The report aggregates created/skipped/failed counts plus the failure list
// in token order.
func (uc *UseCase) BulkImport(ctx context.Context, userID string, in dto.BulkImportRequest) (*dto.ImportReport, error) {
	batch := &entity.DebtorBatch{
		Name:        in.BatchName,
		Description: in.Description,
		UserID:      &userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	tokens := Tokenize(in.Content)
	outcomes := make([]tokenOutcome, len(tokens))

	workers := uc.importWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(tokens) {
		workers = len(tokens)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = uc.importToken(ctx, userID, batch.ID, tokens[i])
			}
		}()
	}
	for i := range tokens {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &dto.ImportReport{BatchID: batch.ID}
	for _, out := range outcomes {
		switch {
		case out.err != nil:
			report.Failed++
			report.Errors = append(report.Errors, dto.ImportError{
				Identifier: out.identifier,
				Message:    out.err.Error(),
			})
		case out.skipped:
			report.Skipped++
		case out.created:
			report.Created++
		}
	}
	return report, nil
}

// importToken enriches one identifier and creates its case in the batch.
// Two distinct tokens can normalize to the same company; the first writer
// wins and the loser is counted as a skip (the partial unique index on
// (company_id, batch_id) turns the race into domain.ErrDuplicate).
func (uc *UseCase) importToken(ctx context.Context, userID string, batchID int64, raw string) tokenOutcome {
	tctx, cancel := context.WithTimeout(ctx, uc.importTimeout)
	defer cancel()

	company, err := uc.enricher.FetchAndUpsert(tctx, raw)
	if err != nil {
		return tokenOutcome{identifier: raw, err: err}
	}

	existing, err := uc.cases.FindInBatch(tctx, company.ID, batchID)
	if err != nil {
		return tokenOutcome{identifier: raw, err: err}
	}
	if existing != nil {
		return tokenOutcome{identifier: raw, skipped: true}
	}

	c := newCase(userID, company.ID, &batchID)
	if err := uc.cases.Create(tctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return tokenOutcome{identifier: raw, skipped: true}
		}
		return tokenOutcome{identifier: raw, err: err}
	}
	return tokenOutcome{identifier: raw, created: true}
}
