package enrichment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/incassopro/incasso-api/internal/application/ports"
	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
	"github.com/incassopro/incasso-api/internal/domain/vat"
)

const dateLayout = "2006-01-02"

// noBoxPlaceholder is what the provider sends when an address has no box.
const noBoxPlaceholder = "//"

// UseCase fetches company data from the external provider and upserts the
// local snapshot. Nothing is written when any provider call fails.
type UseCase struct {
	provider  ports.CompanyDataProvider
	companies repository.CompanyRepository
}

// NewUseCase builds the enrichment service.
func NewUseCase(provider ports.CompanyDataProvider, companies repository.CompanyRepository) *UseCase {
	return &UseCase{provider: provider, companies: companies}
}

// FetchAndUpsert normalizes the raw identifier, calls the provider's details
// and financials endpoints, maps the most recent statement into the Company
// shape and upserts by VAT number. Calling it twice with identical provider
// data yields one row with the same id and refreshed fields.
//
// Errors: domain.ErrInvalidVAT for malformed input, domain.ErrNoFinancialData
// when the provider has no statements, provider errors otherwise.
func (uc *UseCase) FetchAndUpsert(ctx context.Context, rawVAT string) (*entity.Company, error) {
	normalized, err := vat.Normalize(rawVAT)
	if err != nil {
		return nil, err
	}
	digits := strings.TrimPrefix(normalized, vat.CountryCode)

	details, err := uc.provider.Details(ctx, digits)
	if err != nil {
		return nil, err
	}
	statements, err := uc.provider.Financials(ctx, digits)
	if err != nil {
		return nil, err
	}
	if len(statements) == 0 {
		return nil, domain.ErrNoFinancialData
	}
	latest := latestStatement(statements)

	company, err := uc.companies.GetByVAT(ctx, normalized)
	if err != nil {
		return nil, err
	}
	created := false
	if company == nil {
		created = true
		company = &entity.Company{
			ID:        uuid.New().String(),
			VATNumber: normalized,
			CreatedAt: time.Now(),
		}
	}

	company.Name = details.Name
	company.Address = buildAddress(details)
	company.EstablishedSince = parseDate(details.FoundedDate)
	company.RevenueEstimation = details.RevenueEstimation
	company.EmployeeEstimation = details.EmployeeEstimation

	company.CreditScore = latest.HealthIndicator
	company.CommonScore = latest.CommonScore
	company.CreditLimit = latest.CreditLimit
	company.CurrentRatio = latest.CurrentRatio
	company.QuickRatio = latest.QuickRatio
	company.Cash = latest.Cash
	company.EBITDA = latest.EBITDA
	company.NetProfit = latest.NetProfit
	company.TotalAssets = latest.TotalAssets
	company.Equity = latest.Equity
	company.TotalDebt = latest.Debt
	company.SolvencyRatio = ratioOfAssets(latest.Equity, latest.TotalAssets)
	company.DebtRatio = ratioOfAssets(latest.Debt, latest.TotalAssets)

	if created {
		err = uc.companies.Create(ctx, company)
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost an insert race on the VAT unique constraint: a concurrent
			// caller created the row between our GetByVAT miss and the
			// insert. Adopt the winner's row and refresh it instead.
			winner, getErr := uc.companies.GetByVAT(ctx, normalized)
			if getErr != nil {
				return nil, getErr
			}
			if winner == nil {
				return nil, err
			}
			company.ID = winner.ID
			company.CreatedAt = winner.CreatedAt
			err = uc.companies.Update(ctx, company)
		}
	} else {
		err = uc.companies.Update(ctx, company)
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// latestStatement picks the statement with the newest start date. Dates are
// parsed and compared as real times; a raw string comparison only kicks in
// for values that fail to parse (ISO-8601 keeps it consistent either way).
func latestStatement(statements []ports.FinancialStatement) ports.FinancialStatement {
	latest := statements[0]
	for _, s := range statements[1:] {
		if statementAfter(s, latest) {
			latest = s
		}
	}
	return latest
}

func statementAfter(a, b ports.FinancialStatement) bool {
	ta, errA := time.Parse(dateLayout, a.StartDate)
	tb, errB := time.Parse(dateLayout, b.StartDate)
	if errA == nil && errB == nil {
		return ta.After(tb)
	}
	return a.StartDate > b.StartDate
}

// ratioOfAssets returns part/assets*100 rounded to 2 decimals, or null when
// total assets are missing or non-positive. Never divides by zero.
func ratioOfAssets(part, assets decimal.NullDecimal) decimal.NullDecimal {
	if !part.Valid || !assets.Valid || !assets.Decimal.IsPositive() {
		return decimal.NullDecimal{}
	}
	r := part.Decimal.Div(assets.Decimal).Mul(decimal.NewFromInt(100)).Round(2)
	return decimal.NullDecimal{Decimal: r, Valid: true}
}

// buildAddress concatenates street+number, box (unless absent or the "//"
// placeholder), postal code and locality, comma-separated, skipping empties.
func buildAddress(d *ports.CompanyDetails) string {
	var parts []string
	street := strings.TrimSpace(strings.TrimSpace(d.Street) + " " + strings.TrimSpace(d.StreetNumber))
	if street != "" {
		parts = append(parts, street)
	}
	if box := strings.TrimSpace(d.Box); box != "" && box != noBoxPlaceholder {
		parts = append(parts, box)
	}
	if pc := strings.TrimSpace(d.PostalCode); pc != "" {
		parts = append(parts, pc)
	}
	if loc := strings.TrimSpace(d.Locality); loc != "" {
		parts = append(parts, loc)
	}
	return strings.Join(parts, ", ")
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
