package postgres

import (
	"context"
	"fmt"

	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo PostgreSQL adapter for debtor batches.
type BatchRepo struct {
	db querier
}

// NewBatchRepository builds the adapter.
func NewBatchRepository(db querier) *BatchRepo {
	return &BatchRepo{db: db}
}

const batchColumns = `batch_id, batch_name, COALESCE(description, ''), user_id, created_at, deleted_at`

// Create inserts the batch and fills in the generated serial ID.
func (r *BatchRepo) Create(ctx context.Context, b *entity.DebtorBatch) error {
	query := `
		INSERT INTO debtor_batches (batch_name, description, user_id, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING batch_id`
	err := r.db.QueryRow(ctx, query, b.Name, b.Description, b.UserID, b.CreatedAt).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID returns the batch or nil.
func (r *BatchRepo) GetByID(ctx context.Context, id int64) (*entity.DebtorBatch, error) {
	query := fmt.Sprintf(`SELECT %s FROM debtor_batches WHERE batch_id = $1 AND deleted_at IS NULL`, batchColumns)
	var b entity.DebtorBatch
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt, &b.DeletedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListByUser returns the user's live batches, newest first.
func (r *BatchRepo) ListByUser(ctx context.Context, userID string) ([]*entity.DebtorBatch, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM debtor_batches
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, batch_id DESC`, batchColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.DebtorBatch
	for rows.Next() {
		var b entity.DebtorBatch
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt, &b.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// SoftDelete stamps deleted_at on a live batch.
func (r *BatchRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE debtor_batches SET deleted_at = now() WHERE batch_id = $1 AND deleted_at IS NULL`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("soft delete batch: %w", err)
	}
	return nil
}
