package postgres

import (
	"context"
	"fmt"

	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo PostgreSQL adapter for company snapshots.
type CompanyRepo struct {
	db querier
}

// NewCompanyRepository builds the adapter.
func NewCompanyRepository(db querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `
	company_id, company_name, COALESCE(address, ''), vat_number,
	credit_score, solvency_ratio, debt_ratio, COALESCE(common_score, ''),
	credit_limit, current_ratio, quick_ratio, cash,
	ebitda, net_profit, total_assets, equity, total_debt,
	established_since, COALESCE(revenue_estimation, ''), COALESCE(employee_estimation, ''),
	created_at, deleted_at`

// Create inserts a fresh snapshot. A concurrent insert of the same VAT
// number surfaces as domain.ErrDuplicate so the caller can fall back to an
// update of the winner's row.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (
			company_id, company_name, address, vat_number,
			credit_score, solvency_ratio, debt_ratio, common_score,
			credit_limit, current_ratio, quick_ratio, cash,
			ebitda, net_profit, total_assets, equity, total_debt,
			established_since, revenue_estimation, employee_estimation, created_at
		) VALUES (
			$1, $2, NULLIF($3, ''), $4,
			$5, $6, $7, NULLIF($8, ''),
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, NULLIF($19, ''), NULLIF($20, ''), $21
		)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.VATNumber,
		c.CreditScore, c.SolvencyRatio, c.DebtRatio, c.CommonScore,
		c.CreditLimit, c.CurrentRatio, c.QuickRatio, c.Cash,
		c.EBITDA, c.NetProfit, c.TotalAssets, c.Equity, c.TotalDebt,
		c.EstablishedSince, c.RevenueEstimation, c.EmployeeEstimation, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update overwrites the snapshot in place, keyed by id.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET
			company_name = $2,
			address = NULLIF($3, ''),
			credit_score = $4,
			solvency_ratio = $5,
			debt_ratio = $6,
			common_score = NULLIF($7, ''),
			credit_limit = $8,
			current_ratio = $9,
			quick_ratio = $10,
			cash = $11,
			ebitda = $12,
			net_profit = $13,
			total_assets = $14,
			equity = $15,
			total_debt = $16,
			established_since = $17,
			revenue_estimation = NULLIF($18, ''),
			employee_estimation = NULLIF($19, '')
		WHERE company_id = $1 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Address,
		c.CreditScore, c.SolvencyRatio, c.DebtRatio, c.CommonScore,
		c.CreditLimit, c.CurrentRatio, c.QuickRatio, c.Cash,
		c.EBITDA, c.NetProfit, c.TotalAssets, c.Equity, c.TotalDebt,
		c.EstablishedSince, c.RevenueEstimation, c.EmployeeEstimation,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// GetByID returns the company or nil.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE company_id = $1 AND deleted_at IS NULL`, companyColumns)
	return r.getOne(ctx, query, id)
}

// GetByVAT returns the company with the normalized VAT number, or nil.
func (r *CompanyRepo) GetByVAT(ctx context.Context, vatNumber string) (*entity.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE vat_number = $1 AND deleted_at IS NULL`, companyColumns)
	return r.getOne(ctx, query, vatNumber)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	row := r.db.QueryRow(ctx, query, arg)
	c, err := scanCompany(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// SearchByName returns companies whose name contains the query,
// case-insensitively, ordered by name.
func (r *CompanyRepo) SearchByName(ctx context.Context, query string, limit int) ([]*entity.Company, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM companies
		WHERE company_name ILIKE '%%' || $1 || '%%' AND deleted_at IS NULL
		ORDER BY company_name
		LIMIT $2`, companyColumns)
	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.VATNumber,
		&c.CreditScore, &c.SolvencyRatio, &c.DebtRatio, &c.CommonScore,
		&c.CreditLimit, &c.CurrentRatio, &c.QuickRatio, &c.Cash,
		&c.EBITDA, &c.NetProfit, &c.TotalAssets, &c.Equity, &c.TotalDebt,
		&c.EstablishedSince, &c.RevenueEstimation, &c.EmployeeEstimation,
		&c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
