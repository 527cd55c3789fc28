package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCaseRequest adds one company as a tracked case. Exactly one target:
//   - BatchID set            -> add to that existing batch
//   - NewBatchName set       -> create a batch and add the case to it
//   - neither                -> standalone debtor (is_debtor = true)
//
// Naming both targets at once is rejected.
type AddCaseRequest struct {
	CompanyID           string `json:"company_id" validate:"required,uuid"`
	BatchID             *int64 `json:"batch_id" validate:"omitempty,min=1,excluded_with=NewBatchName"`
	NewBatchName        string `json:"new_batch_name" validate:"omitempty,max=255"`
	NewBatchDescription string `json:"new_batch_description" validate:"omitempty,max=2000"`
}

// BulkImportRequest creates a batch from a delimited text upload.
type BulkImportRequest struct {
	BatchName   string `json:"batch_name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Content     string `json:"content" validate:"required"`
}

// CaseResponse one tracked case, with its company snapshot for display.
type CaseResponse struct {
	ID        int64               `json:"id"`
	BatchID   *int64              `json:"batch_id,omitempty"`
	IsDebtor  bool                `json:"is_debtor"`
	Amount    decimal.NullDecimal `json:"amount"`
	Status    string              `json:"status,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Company   *CompanyResponse    `json:"company,omitempty"`
}

// BatchResponse batch metadata.
type BatchResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BatchDetailResponse a batch with its cases ranked for field visits.
type BatchDetailResponse struct {
	Batch BatchResponse  `json:"batch"`
	Cases []CaseResponse `json:"cases"`
}

// BatchListResponse all batches of the requesting user.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
}

// CaseListResponse ranked standalone debtors of the requesting user.
type CaseListResponse struct {
	Items []CaseResponse `json:"items"`
}

// ImportError one failed identifier from a bulk import.
type ImportError struct {
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
}

// ImportReport aggregated outcome of a bulk import. Failures never abort the
// run; successes stay committed.
type ImportReport struct {
	BatchID int64         `json:"batch_id"`
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// DeleteCaseResponse tells the caller which batch (if any) the deleted case
// belonged to, for navigation.
type DeleteCaseResponse struct {
	CaseID  int64  `json:"case_id"`
	BatchID *int64 `json:"batch_id,omitempty"`
}
