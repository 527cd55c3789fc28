package postgres

import (
	"context"
	"fmt"

	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

var _ repository.CaseRepository = (*CaseRepo)(nil)

// CaseRepo PostgreSQL adapter for collection cases.
type CaseRepo struct {
	db querier
}

// NewCaseRepository builds the adapter.
func NewCaseRepository(db querier) *CaseRepo {
	return &CaseRepo{db: db}
}

const caseColumns = `
	c.case_id, c.company_id, c.user_id, c.batch_id,
	c.amount, COALESCE(c.status, ''), c.is_debtor, c.created_at, c.deleted_at`

// Create inserts the case and fills in the generated serial ID. A partial
// unique index on (company_id, batch_id) for live rows turns concurrent
// inserts of the same pair into domain.ErrDuplicate.
func (r *CaseRepo) Create(ctx context.Context, c *entity.Case) error {
	query := `
		INSERT INTO cases (company_id, user_id, batch_id, amount, status, is_debtor, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING case_id`
	err := r.db.QueryRow(ctx, query,
		c.CompanyID, c.UserID, c.BatchID, c.Amount, c.Status, c.IsDebtor, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

// GetByID returns the case or nil. The company snapshot is not joined here;
// single-case reads only need ownership and batch linkage.
func (r *CaseRepo) GetByID(ctx context.Context, id int64) (*entity.Case, error) {
	query := fmt.Sprintf(`SELECT %s FROM cases c WHERE c.case_id = $1 AND c.deleted_at IS NULL`, caseColumns)
	return r.getOne(ctx, query, id)
}

// FindInBatch returns the live case for (company, batch), or nil.
func (r *CaseRepo) FindInBatch(ctx context.Context, companyID string, batchID int64) (*entity.Case, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cases c
		WHERE c.company_id = $1 AND c.batch_id = $2 AND c.deleted_at IS NULL`, caseColumns)
	return r.getOne(ctx, query, companyID, batchID)
}

// FindStandalone returns the live batchless case for (user, company), or nil.
func (r *CaseRepo) FindStandalone(ctx context.Context, userID, companyID string) (*entity.Case, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cases c
		WHERE c.user_id = $1 AND c.company_id = $2 AND c.batch_id IS NULL AND c.deleted_at IS NULL`, caseColumns)
	return r.getOne(ctx, query, userID, companyID)
}

func (r *CaseRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Case, error) {
	var c entity.Case
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CompanyID, &c.UserID, &c.BatchID,
		&c.Amount, &c.Status, &c.IsDebtor, &c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get case: %w", err)
	}
	return &c, nil
}

// ListByBatch returns the batch's live cases with their company snapshots
// joined, so callers can rank without extra round trips.
func (r *CaseRepo) ListByBatch(ctx context.Context, batchID int64) ([]*entity.Case, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM cases c
		JOIN companies co ON co.company_id = c.company_id
		WHERE c.batch_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.case_id`, caseColumns, joinedCompanyColumns)
	return r.list(ctx, query, batchID)
}

// ListStandaloneByUser returns the user's live batchless cases with their
// company snapshots joined.
func (r *CaseRepo) ListStandaloneByUser(ctx context.Context, userID string) ([]*entity.Case, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM cases c
		JOIN companies co ON co.company_id = c.company_id
		WHERE c.user_id = $1 AND c.batch_id IS NULL AND c.deleted_at IS NULL
		ORDER BY c.case_id`, caseColumns, joinedCompanyColumns)
	return r.list(ctx, query, userID)
}

const joinedCompanyColumns = `
	co.company_name, COALESCE(co.address, ''), co.vat_number,
	co.credit_score, co.solvency_ratio, co.debt_ratio, COALESCE(co.common_score, ''),
	co.credit_limit, co.current_ratio, co.quick_ratio, co.cash,
	co.ebitda, co.net_profit, co.total_assets, co.equity, co.total_debt,
	co.established_since, COALESCE(co.revenue_estimation, ''), COALESCE(co.employee_estimation, ''),
	co.created_at`

func (r *CaseRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Case, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var cases []*entity.Case
	for rows.Next() {
		var c entity.Case
		var co entity.Company
		err := rows.Scan(
			&c.ID, &c.CompanyID, &c.UserID, &c.BatchID,
			&c.Amount, &c.Status, &c.IsDebtor, &c.CreatedAt, &c.DeletedAt,
			&co.Name, &co.Address, &co.VATNumber,
			&co.CreditScore, &co.SolvencyRatio, &co.DebtRatio, &co.CommonScore,
			&co.CreditLimit, &co.CurrentRatio, &co.QuickRatio, &co.Cash,
			&co.EBITDA, &co.NetProfit, &co.TotalAssets, &co.Equity, &co.TotalDebt,
			&co.EstablishedSince, &co.RevenueEstimation, &co.EmployeeEstimation,
			&co.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		co.ID = c.CompanyID
		c.Company = &co
		cases = append(cases, &c)
	}
	return cases, rows.Err()
}

// SoftDelete stamps deleted_at on a live case.
func (r *CaseRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE cases SET deleted_at = now() WHERE case_id = $1 AND deleted_at IS NULL`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("soft delete case: %w", err)
	}
	return nil
}

// SoftDeleteByBatch stamps every live case of the batch.
func (r *CaseRepo) SoftDeleteByBatch(ctx context.Context, batchID int64) error {
	query := `UPDATE cases SET deleted_at = now() WHERE batch_id = $1 AND deleted_at IS NULL`
	if _, err := r.db.Exec(ctx, query, batchID); err != nil {
		return fmt.Errorf("soft delete batch cases: %w", err)
	}
	return nil
}
