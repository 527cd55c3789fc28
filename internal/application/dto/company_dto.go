package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LookupRequest triggers enrichment for a raw VAT number as typed by the user.
type LookupRequest struct {
	VATNumber string `json:"vat_number" validate:"required,min=9,max=20"`
}

// CompanyResponse the stored financial snapshot of a company.
// Nullable metrics serialize as null when the provider did not report them.
type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	VATNumber string `json:"vat_number"`

	CreditScore   decimal.NullDecimal `json:"credit_score"`
	SolvencyRatio decimal.NullDecimal `json:"solvency_ratio"`
	DebtRatio     decimal.NullDecimal `json:"debt_ratio"`
	CommonScore   string              `json:"common_score,omitempty"`
	CreditLimit   decimal.NullDecimal `json:"credit_limit"`
	CurrentRatio  decimal.NullDecimal `json:"current_ratio"`
	QuickRatio    decimal.NullDecimal `json:"quick_ratio"`
	Cash          decimal.NullDecimal `json:"cash"`
	EBITDA        decimal.NullDecimal `json:"ebitda"`
	NetProfit     decimal.NullDecimal `json:"net_profit"`
	TotalAssets   decimal.NullDecimal `json:"total_assets"`
	Equity        decimal.NullDecimal `json:"equity"`
	TotalDebt     decimal.NullDecimal `json:"total_debt"`

	EstablishedSince   *time.Time `json:"established_since,omitempty"`
	RevenueEstimation  string     `json:"revenue_estimation,omitempty"`
	EmployeeEstimation string     `json:"employee_estimation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CompanyListResponse search results.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}

// ScoreResponse weighted solvency score of a company; Score is null when a
// component metric is missing.
type ScoreResponse struct {
	CompanyID string              `json:"company_id"`
	Score     decimal.NullDecimal `json:"score"`
}
