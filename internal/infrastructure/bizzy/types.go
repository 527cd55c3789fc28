package bizzy

import (
	"github.com/shopspring/decimal"

	"github.com/incassopro/incasso-api/internal/application/ports"
)

// Wire types for the Bizzy company-data API. Both endpoints wrap their
// payload in an "identifier" + "data" envelope; details carries an object,
// financials an array of per-period statements.

type identifier struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Value       string `json:"value"`
}

type detailsResponse struct {
	Identifier identifier  `json:"identifier"`
	Data       detailsData `json:"data"`
}

type detailsData struct {
	Address            address `json:"address"`
	FoundedDate        string  `json:"foundedDate"`
	RevenueEstimation  string  `json:"revenueEstimation"`
	EmployeeEstimation string  `json:"employeeEstimation"`
}

type address struct {
	Street       string `json:"street"`
	StreetNumber string `json:"streetNumber"`
	Box          string `json:"box"`
	PostalCode   string `json:"postalCode"`
	Locality     string `json:"locality"`
}

type financialsResponse struct {
	Identifier identifier  `json:"identifier"`
	Data       []statement `json:"data"`
}

type statement struct {
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
	HealthIndicator *decimal.Decimal `json:"healthIndicator"`
	CommonScore     string           `json:"commonScore"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	Profitability   profitability    `json:"profitability"`
	Solvency        solvency         `json:"solvency"`
	Liquidity       liquidity        `json:"liquidity"`
}

type profitability struct {
	EBITDA    *decimal.Decimal `json:"ebitda"`
	NetProfit *decimal.Decimal `json:"netProfit"`
}

type solvency struct {
	Equity      *decimal.Decimal `json:"equity"`
	TotalAssets *decimal.Decimal `json:"totalAssets"`
	Debt        *decimal.Decimal `json:"debt"`
}

type liquidity struct {
	CurrentRatio *decimal.Decimal `json:"currentRatio"`
	QuickRatio   *decimal.Decimal `json:"quickRatio"`
	Cash         *decimal.Decimal `json:"cash"`
}

func (r *detailsResponse) toPort() *ports.CompanyDetails {
	return &ports.CompanyDetails{
		Name:               r.Identifier.Name,
		Street:             r.Data.Address.Street,
		StreetNumber:       r.Data.Address.StreetNumber,
		Box:                r.Data.Address.Box,
		PostalCode:         r.Data.Address.PostalCode,
		Locality:           r.Data.Address.Locality,
		FoundedDate:        r.Data.FoundedDate,
		RevenueEstimation:  r.Data.RevenueEstimation,
		EmployeeEstimation: r.Data.EmployeeEstimation,
	}
}

func (s *statement) toPort() ports.FinancialStatement {
	return ports.FinancialStatement{
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		HealthIndicator: nullable(s.HealthIndicator),
		CommonScore:     s.CommonScore,
		CreditLimit:     nullable(s.CreditLimit),
		CurrentRatio:    nullable(s.Liquidity.CurrentRatio),
		QuickRatio:      nullable(s.Liquidity.QuickRatio),
		Cash:            nullable(s.Liquidity.Cash),
		EBITDA:          nullable(s.Profitability.EBITDA),
		NetProfit:       nullable(s.Profitability.NetProfit),
		Equity:          nullable(s.Solvency.Equity),
		TotalAssets:     nullable(s.Solvency.TotalAssets),
		Debt:            nullable(s.Solvency.Debt),
	}
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
