package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company holds the latest fetched financial snapshot for a Belgian company.
// VATNumber is the natural key and is always stored normalized ("BE" + 10
// digits). Re-enrichment overwrites the snapshot in place; no history is kept.
type Company struct {
	ID        string // UUID
	Name      string
	Address   string // human-readable, assembled by the enrichment service
	VATNumber string

	CreditScore   decimal.NullDecimal // provider health indicator
	SolvencyRatio decimal.NullDecimal // equity / total assets * 100
	DebtRatio     decimal.NullDecimal // debt / total assets * 100
	CommonScore   string              // provider letter grade, e.g. "B1"
	CreditLimit   decimal.NullDecimal
	CurrentRatio  decimal.NullDecimal
	QuickRatio    decimal.NullDecimal
	Cash          decimal.NullDecimal
	EBITDA        decimal.NullDecimal
	NetProfit     decimal.NullDecimal
	TotalAssets   decimal.NullDecimal
	Equity        decimal.NullDecimal
	TotalDebt     decimal.NullDecimal

	EstablishedSince   *time.Time
	RevenueEstimation  string // provider bucket, e.g. "2M_5M"
	EmployeeEstimation string

	CreatedAt time.Time
	DeletedAt *time.Time
}

// Weights of the composite solvency score shown on the company detail page.
var (
	scoreWeightSolvency = decimal.NewFromFloat(0.5)
	scoreWeightDebt     = decimal.NewFromFloat(0.3)
	scoreWeightCredit   = decimal.NewFromFloat(0.2)
	hundred             = decimal.NewFromInt(100)
	ten                 = decimal.NewFromInt(10)
)

// SolvencyScore computes the weighted health score:
//
//	solvency*0.5 + (100-debt)*0.3 + credit/10*0.2
//
// rounded to 2 decimals. ok is false when any input metric is missing.
func (c *Company) SolvencyScore() (decimal.Decimal, bool) {
	if !c.SolvencyRatio.Valid || !c.DebtRatio.Valid || !c.CreditScore.Valid {
		return decimal.Zero, false
	}
	score := c.SolvencyRatio.Decimal.Mul(scoreWeightSolvency).
		Add(hundred.Sub(c.DebtRatio.Decimal).Mul(scoreWeightDebt)).
		Add(c.CreditScore.Decimal.Div(ten).Mul(scoreWeightCredit))
	return score.Round(2), true
}
