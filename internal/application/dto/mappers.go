package dto

import "github.com/incassopro/incasso-api/internal/domain/entity"

// NewCompanyResponse maps a company entity to its response shape.
func NewCompanyResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Address:            c.Address,
		VATNumber:          c.VATNumber,
		CreditScore:        c.CreditScore,
		SolvencyRatio:      c.SolvencyRatio,
		DebtRatio:          c.DebtRatio,
		CommonScore:        c.CommonScore,
		CreditLimit:        c.CreditLimit,
		CurrentRatio:       c.CurrentRatio,
		QuickRatio:         c.QuickRatio,
		Cash:               c.Cash,
		EBITDA:             c.EBITDA,
		NetProfit:          c.NetProfit,
		TotalAssets:        c.TotalAssets,
		Equity:             c.Equity,
		TotalDebt:          c.TotalDebt,
		EstablishedSince:   c.EstablishedSince,
		RevenueEstimation:  c.RevenueEstimation,
		EmployeeEstimation: c.EmployeeEstimation,
		CreatedAt:          c.CreatedAt,
	}
}

// NewCaseResponse maps a case entity (with joined company, when loaded).
func NewCaseResponse(c *entity.Case) CaseResponse {
	return CaseResponse{
		ID:        c.ID,
		BatchID:   c.BatchID,
		IsDebtor:  c.IsDebtor,
		Amount:    c.Amount,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		Company:   NewCompanyResponse(c.Company),
	}
}

// NewBatchResponse maps a batch entity.
func NewBatchResponse(b *entity.DebtorBatch) BatchResponse {
	return BatchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}
