package debtor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incassopro/incasso-api/internal/application/debtor"
	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

const (
	userAlice = "00000000-0000-0000-0000-00000000000a"
	userBob   = "00000000-0000-0000-0000-00000000000b"
)

func nowTime() time.Time { return time.Now() }

func metric(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

// fakeBatchRepo in-memory BatchRepository.
type fakeBatchRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*entity.DebtorBatch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{rows: make(map[int64]*entity.DebtorBatch)}
}

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.DebtorBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id int64) (*entity.DebtorBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok || b.DeletedAt != nil {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) ListByUser(_ context.Context, userID string) ([]*entity.DebtorBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DebtorBatch
	for _, b := range r.rows {
		if b.DeletedAt == nil && b.OwnedBy(userID) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.rows[id]; ok {
		now := nowTime()
		b.DeletedAt = &now
	}
	return nil
}

// fakeCaseRepo in-memory CaseRepository, safe for the import worker pool.
type fakeCaseRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*entity.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{rows: make(map[int64]*entity.Case)}
}

func (r *fakeCaseRepo) Create(_ context.Context, c *entity.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirror the partial unique indexes of the schema.
	for _, existing := range r.rows {
		if existing.DeletedAt != nil || existing.CompanyID != c.CompanyID {
			continue
		}
		if c.BatchID != nil && existing.BatchID != nil && *existing.BatchID == *c.BatchID {
			return domain.ErrDuplicate
		}
		if c.BatchID == nil && existing.BatchID == nil &&
			existing.UserID != nil && c.UserID != nil && *existing.UserID == *c.UserID {
			return domain.ErrDuplicate
		}
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCaseRepo) GetByID(_ context.Context, id int64) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCaseRepo) FindInBatch(_ context.Context, companyID string, batchID int64) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.DeletedAt == nil && c.CompanyID == companyID && c.BatchID != nil && *c.BatchID == batchID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCaseRepo) FindStandalone(_ context.Context, userID, companyID string) (*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.DeletedAt == nil && c.BatchID == nil && c.CompanyID == companyID && c.OwnedBy(userID) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCaseRepo) ListByBatch(_ context.Context, batchID int64) ([]*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Case
	for _, c := range r.rows {
		if c.DeletedAt == nil && c.BatchID != nil && *c.BatchID == batchID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) ListStandaloneByUser(_ context.Context, userID string) ([]*entity.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Case
	for _, c := range r.rows {
		if c.DeletedAt == nil && c.BatchID == nil && c.OwnedBy(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.rows[id]; ok {
		now := nowTime()
		c.DeletedAt = &now
	}
	return nil
}

func (r *fakeCaseRepo) SoftDeleteByBatch(_ context.Context, batchID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.DeletedAt == nil && c.BatchID != nil && *c.BatchID == batchID {
			now := nowTime()
			c.DeletedAt = &now
		}
	}
	return nil
}

func (r *fakeCaseRepo) liveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.rows {
		if c.DeletedAt == nil {
			n++
		}
	}
	return n
}

// fakeTx runs the callback against the same fakes; the fakes apply writes
// immediately, which is fine for these tests.
type fakeTx struct {
	batches repository.BatchRepository
	cases   repository.CaseRepository
}

func (t *fakeTx) Run(_ context.Context, fn func(repository.BatchRepository, repository.CaseRepository) error) error {
	return fn(t.batches, t.cases)
}

// fakeEnricher maps identifiers to companies or errors.
type fakeEnricher struct {
	companies map[string]*entity.Company
	errs      map[string]error
}

func (e *fakeEnricher) FetchAndUpsert(_ context.Context, raw string) (*entity.Company, error) {
	if err, ok := e.errs[raw]; ok {
		return nil, err
	}
	if c, ok := e.companies[raw]; ok {
		return c, nil
	}
	return nil, domain.ErrInvalidVAT
}

func newTestUseCase(t *testing.T) (*debtor.UseCase, *fakeBatchRepo, *fakeCaseRepo, *fakeEnricher) {
	t.Helper()
	batches := newFakeBatchRepo()
	cases := newFakeCaseRepo()
	enricher := &fakeEnricher{
		companies: make(map[string]*entity.Company),
		errs:      make(map[string]error),
	}
	tx := &fakeTx{batches: batches, cases: cases}
	return debtor.NewUseCase(tx, batches, cases, enricher), batches, cases, enricher
}

func seedBatch(t *testing.T, batches *fakeBatchRepo, owner string) int64 {
	t.Helper()
	owned := owner
	b := &entity.DebtorBatch{Name: "seed", UserID: &owned}
	require.NoError(t, batches.Create(context.Background(), b))
	return b.ID
}

// ── AddSingle ────────────────────────────────────────────────────────────────

func TestAddSingle_Standalone(t *testing.T) {
	uc, _, cases, _ := newTestUseCase(t)

	out, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1"})
	require.NoError(t, err)
	assert.True(t, out.IsDebtor, "batchless cases are debtors")
	assert.Nil(t, out.BatchID)
	assert.Equal(t, 1, cases.liveCount())
}

func TestAddSingle_StandaloneDuplicateRejected(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1"})
	require.NoError(t, err)
	_, err = uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// A different user may track the same company.
	_, err = uc.AddSingle(context.Background(), userBob, dto.AddCaseRequest{CompanyID: "co-1"})
	assert.NoError(t, err)
}

func TestAddSingle_ToExistingBatch(t *testing.T) {
	uc, batches, _, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userAlice)

	out, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1", BatchID: &batchID})
	require.NoError(t, err)
	assert.False(t, out.IsDebtor)
	require.NotNil(t, out.BatchID)
	assert.Equal(t, batchID, *out.BatchID)

	_, err = uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1", BatchID: &batchID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAddSingle_ForeignBatchForbidden(t *testing.T) {
	uc, batches, _, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userBob)

	_, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1", BatchID: &batchID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddSingle_UnknownBatch(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	missing := int64(404)

	_, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1", BatchID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddSingle_NewBatchCreatesBoth(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	out, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{
		CompanyID:    "co-1",
		NewBatchName: "Q3 visits",
	})
	require.NoError(t, err)
	require.NotNil(t, out.BatchID)

	list, err := uc.ListBatches(context.Background(), userAlice)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Q3 visits", list.Items[0].Name)
}

func TestAddSingle_BothTargetsRejected(t *testing.T) {
	uc, batches, cases, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userAlice)

	_, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{
		CompanyID:    "co-1",
		BatchID:      &batchID,
		NewBatchName: "Q3 visits",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := cases.ListByBatch(context.Background(), batchID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ── Deletion ─────────────────────────────────────────────────────────────────

func TestDeleteBatch_CascadesToCases(t *testing.T) {
	uc, batches, cases, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userAlice)
	for _, co := range []string{"co-1", "co-2"} {
		_, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: co, BatchID: &batchID})
		require.NoError(t, err)
	}

	require.NoError(t, uc.DeleteBatch(context.Background(), batchID, userAlice))
	assert.Zero(t, cases.liveCount())

	_, err := uc.GetBatch(context.Background(), batchID, userAlice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteBatch_OwnershipEnforced(t *testing.T) {
	uc, batches, _, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userBob)

	err := uc.DeleteBatch(context.Background(), batchID, userAlice)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.DeleteBatch(context.Background(), int64(999), userAlice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCase_ReturnsBatchID(t *testing.T) {
	uc, batches, cases, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userAlice)
	added, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1", BatchID: &batchID})
	require.NoError(t, err)

	out, err := uc.DeleteCase(context.Background(), added.ID, userAlice)
	require.NoError(t, err)
	require.NotNil(t, out.BatchID)
	assert.Equal(t, batchID, *out.BatchID)
	assert.Zero(t, cases.liveCount())

	_, err = uc.DeleteCase(context.Background(), added.ID, userAlice)
	assert.ErrorIs(t, err, domain.ErrNotFound, "soft-deleted cases are gone for reads")
}

func TestDeleteCase_OwnershipEnforced(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	added, err := uc.AddSingle(context.Background(), userAlice, dto.AddCaseRequest{CompanyID: "co-1"})
	require.NoError(t, err)

	_, err = uc.DeleteCase(context.Background(), added.ID, userBob)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Bulk import ──────────────────────────────────────────────────────────────

func TestBulkImport_ReportsPerIdentifier(t *testing.T) {
	uc, _, cases, enricher := newTestUseCase(t)
	enricher.companies["BE0473416418"] = &entity.Company{ID: "co-1"}
	enricher.companies["BE0883607879"] = &entity.Company{ID: "co-2"}
	enricher.errs["BE0000000000"] = errors.New("unknown company")

	report, err := uc.BulkImport(context.Background(), userAlice, dto.BulkImportRequest{
		BatchName: "upload",
		Content:   "vat\nBE0473416418\nBE0883607879\nBE0000000000",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "BE0000000000", report.Errors[0].Identifier)
	assert.Equal(t, 2, cases.liveCount(), "successes stay committed despite the failure")
}

func TestBulkImport_TokensResolvingToSameCompanySkipOnce(t *testing.T) {
	uc, _, _, enricher := newTestUseCase(t)
	// Two spellings of the same VAT number resolve to one company.
	enricher.companies["BE0473416418"] = &entity.Company{ID: "co-1"}
	enricher.companies["0473.416.418"] = &entity.Company{ID: "co-1"}

	report, err := uc.BulkImport(context.Background(), userAlice, dto.BulkImportRequest{
		BatchName: "upload",
		Content:   "BE0473416418\n0473.416.418",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Failed)
}

func TestBulkImport_EmptyContent(t *testing.T) {
	uc, batches, _, _ := newTestUseCase(t)

	report, err := uc.BulkImport(context.Background(), userAlice, dto.BulkImportRequest{
		BatchName: "empty",
		Content:   "vat\n\n",
	})
	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Zero(t, report.Failed)

	// The batch exists even with nothing imported.
	b, err := batches.GetByID(context.Background(), report.BatchID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "empty", b.Name)
}

// ── Ranked reads ─────────────────────────────────────────────────────────────

func TestGetBatch_RanksCases(t *testing.T) {
	uc, batches, cases, _ := newTestUseCase(t)
	batchID := seedBatch(t, batches, userAlice)

	owned := userAlice
	for _, seed := range []struct {
		company string
		quick   float64
	}{
		{"co-low", 0.2},
		{"co-high", 3.0},
		{"co-mid", 1.1},
	} {
		require.NoError(t, cases.Create(context.Background(), &entity.Case{
			CompanyID: seed.company,
			UserID:    &owned,
			BatchID:   &batchID,
			Company:   &entity.Company{ID: seed.company, QuickRatio: metric(seed.quick)},
		}))
	}

	out, err := uc.GetBatch(context.Background(), batchID, userAlice)
	require.NoError(t, err)
	require.Len(t, out.Cases, 3)
	assert.Equal(t, "co-high", out.Cases[0].Company.ID)
	assert.Equal(t, "co-mid", out.Cases[1].Company.ID)
	assert.Equal(t, "co-low", out.Cases[2].Company.ID)
}
