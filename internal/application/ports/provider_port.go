package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// CompanyDataProvider is the outbound port for the external business-data
// API. Any adapter (Bizzy REST client, test fake) implements this contract;
// the application layer never sees HTTP. The context must carry a timeout:
// bulk import calls this once per identifier.
type CompanyDataProvider interface {
	// Details fetches identity and address data for the 10-digit local part
	// of a normalized Belgian VAT number.
	Details(ctx context.Context, vatDigits string) (*CompanyDetails, error)
	// Financials fetches the per-fiscal-year statements, newest not
	// guaranteed first.
	Financials(ctx context.Context, vatDigits string) ([]FinancialStatement, error)
}

// CompanyDetails is the provider's identity/address payload mapped to neutral
// fields. Dates stay as ISO-8601 strings; the enrichment service parses them.
type CompanyDetails struct {
	Name               string
	Street             string
	StreetNumber       string
	Box                string // "//" is a provider placeholder for "no box"
	PostalCode         string
	Locality           string
	FoundedDate        string // ISO-8601, may be empty
	RevenueEstimation  string // bucket label
	EmployeeEstimation string
}

// FinancialStatement is one fiscal-year statement.
type FinancialStatement struct {
	StartDate string // ISO-8601
	EndDate   string

	HealthIndicator decimal.NullDecimal // provider credit score
	CommonScore     string
	CreditLimit     decimal.NullDecimal

	CurrentRatio decimal.NullDecimal
	QuickRatio   decimal.NullDecimal
	Cash         decimal.NullDecimal

	EBITDA    decimal.NullDecimal
	NetProfit decimal.NullDecimal

	Equity      decimal.NullDecimal
	TotalAssets decimal.NullDecimal
	Debt        decimal.NullDecimal
}
