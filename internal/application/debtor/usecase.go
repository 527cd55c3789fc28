package debtor

import (
	"context"
	"fmt"
	"time"

	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/ranking"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

const (
	defaultImportWorkers = 4
	defaultImportTimeout = 30 * time.Second
)

// UseCase manages cases and batches: single additions, bulk import, deletion
// with ownership checks, and ranked queries for visit planning.
type UseCase struct {
	tx       TxRunner
	batches  repository.BatchRepository
	cases    repository.CaseRepository
	enricher Enricher

	importWorkers int
	importTimeout time.Duration
}

// NewUseCase builds the case/batch manager.
func NewUseCase(tx TxRunner, batches repository.BatchRepository, cases repository.CaseRepository, enricher Enricher) *UseCase {
	return &UseCase{
		tx:            tx,
		batches:       batches,
		cases:         cases,
		enricher:      enricher,
		importWorkers: defaultImportWorkers,
		importTimeout: defaultImportTimeout,
	}
}

// AddSingle creates one case for the requesting user. The target is an
// existing batch, a new batch, or standalone (see dto.AddCaseRequest).
// Duplicates — same (company, batch), or a second standalone case for the
// same (user, company) — are rejected with domain.ErrDuplicate; the policy is
// the same in every path. Naming both an existing batch and a new one is
// ambiguous and rejected with domain.ErrInvalidInput.
func (uc *UseCase) AddSingle(ctx context.Context, userID string, in dto.AddCaseRequest) (*dto.CaseResponse, error) {
	if in.BatchID != nil && in.NewBatchName != "" {
		return nil, fmt.Errorf("%w: batch_id and new_batch_name are mutually exclusive", domain.ErrInvalidInput)
	}
	switch {
	case in.BatchID != nil:
		return uc.addToExistingBatch(ctx, userID, in.CompanyID, *in.BatchID)
	case in.NewBatchName != "":
		return uc.addToNewBatch(ctx, userID, in)
	default:
		return uc.addStandalone(ctx, userID, in.CompanyID)
	}
}

func (uc *UseCase) addToExistingBatch(ctx context.Context, userID, companyID string, batchID int64) (*dto.CaseResponse, error) {
	batch, err := uc.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if !batch.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.cases.FindInBatch(ctx, companyID, batchID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := newCase(userID, companyID, &batchID)
	if err := uc.cases.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCaseResponse(c)
	return &out, nil
}

func (uc *UseCase) addToNewBatch(ctx context.Context, userID string, in dto.AddCaseRequest) (*dto.CaseResponse, error) {
	var c *entity.Case
	err := uc.tx.Run(ctx, func(batches repository.BatchRepository, cases repository.CaseRepository) error {
		batch := &entity.DebtorBatch{
			Name:        in.NewBatchName,
			Description: in.NewBatchDescription,
			UserID:      &userID,
			CreatedAt:   time.Now(),
		}
		if err := batches.Create(ctx, batch); err != nil {
			return err
		}
		c = newCase(userID, in.CompanyID, &batch.ID)
		return cases.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewCaseResponse(c)
	return &out, nil
}

func (uc *UseCase) addStandalone(ctx context.Context, userID, companyID string) (*dto.CaseResponse, error) {
	existing, err := uc.cases.FindStandalone(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := newCase(userID, companyID, nil)
	if err := uc.cases.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCaseResponse(c)
	return &out, nil
}

// newCase builds a case; is_debtor is true only for standalone cases.
func newCase(userID, companyID string, batchID *int64) *entity.Case {
	return &entity.Case{
		CompanyID: companyID,
		UserID:    &userID,
		BatchID:   batchID,
		IsDebtor:  batchID == nil,
		CreatedAt: time.Now(),
	}
}

// DeleteBatch soft-deletes the batch and all its cases atomically. Fails with
// domain.ErrNotFound for unknown batches and domain.ErrForbidden when the
// requesting user does not own it; nothing is modified in either case.
func (uc *UseCase) DeleteBatch(ctx context.Context, batchID int64, userID string) error {
	batch, err := uc.batches.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	if !batch.OwnedBy(userID) {
		return domain.ErrForbidden
	}
	return uc.tx.Run(ctx, func(batches repository.BatchRepository, cases repository.CaseRepository) error {
		if err := cases.SoftDeleteByBatch(ctx, batchID); err != nil {
			return err
		}
		return batches.SoftDelete(ctx, batchID)
	})
}

// DeleteCase soft-deletes one case after an ownership check. The response
// carries the batch the case belonged to, so the caller can navigate back.
func (uc *UseCase) DeleteCase(ctx context.Context, caseID int64, userID string) (*dto.DeleteCaseResponse, error) {
	c, err := uc.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !c.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.cases.SoftDelete(ctx, caseID); err != nil {
		return nil, err
	}
	return &dto.DeleteCaseResponse{CaseID: caseID, BatchID: c.BatchID}, nil
}

// ListBatches returns the requesting user's batches.
func (uc *UseCase) ListBatches(ctx context.Context, userID string) (*dto.BatchListResponse, error) {
	list, err := uc.batches.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.NewBatchResponse(b))
	}
	return &dto.BatchListResponse{Items: items}, nil
}

// GetBatch returns a batch with its cases ranked for field visits.
func (uc *UseCase) GetBatch(ctx context.Context, batchID int64, userID string) (*dto.BatchDetailResponse, error) {
	batch, cases, err := uc.rankedBatch(ctx, batchID, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CaseResponse, 0, len(cases))
	for _, c := range cases {
		items = append(items, dto.NewCaseResponse(c))
	}
	return &dto.BatchDetailResponse{Batch: dto.NewBatchResponse(batch), Cases: items}, nil
}

// ListDebtors returns the user's standalone debtor cases, ranked.
func (uc *UseCase) ListDebtors(ctx context.Context, userID string) (*dto.CaseListResponse, error) {
	cases, err := uc.cases.ListStandaloneByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ranking.Rank(cases)
	items := make([]dto.CaseResponse, 0, len(cases))
	for _, c := range cases {
		items = append(items, dto.NewCaseResponse(c))
	}
	return &dto.CaseListResponse{Items: items}, nil
}

// rankedBatch loads a batch plus its ranked cases, enforcing ownership.
func (uc *UseCase) rankedBatch(ctx context.Context, batchID int64, userID string) (*entity.DebtorBatch, []*entity.Case, error) {
	batch, err := uc.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !batch.OwnedBy(userID) {
		return nil, nil, domain.ErrForbidden
	}
	cases, err := uc.cases.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	ranking.Rank(cases)
	return batch, cases, nil
}
