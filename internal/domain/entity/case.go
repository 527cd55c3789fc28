package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Case links a user to a company being tracked for collection, optionally
// inside a batch. IsDebtor is true only for standalone cases (no batch).
// Amount and Status exist in the schema but are never populated by the
// enrichment flow; they keep their defaults until set manually.
type Case struct {
	ID        int64
	CompanyID string
	UserID    *string // UUID; nil after owner deletion
	BatchID   *int64
	Amount    decimal.NullDecimal
	Status    string
	IsDebtor  bool
	CreatedAt time.Time
	DeletedAt *time.Time

	// Company is populated by joined queries for ranking and display.
	Company *Company
}

// OwnedBy reports whether the case belongs to the given user.
func (c *Case) OwnedBy(userID string) bool {
	return c.UserID != nil && *c.UserID == userID
}
