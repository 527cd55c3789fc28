package entity

import "time"

// DebtorBatch is a named, user-owned grouping of cases, created explicitly or
// implicitly by a bulk import. Deleting a batch soft-deletes its cases with it;
// deleting the owning user only detaches the batch (UserID becomes nil).
type DebtorBatch struct {
	ID          int64
	Name        string
	Description string
	UserID      *string // UUID; nil after owner deletion
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// OwnedBy reports whether the batch belongs to the given user.
func (b *DebtorBatch) OwnedBy(userID string) bool {
	return b.UserID != nil && *b.UserID == userID
}
