package repository

import (
	"context"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

func (r *Repository) GetActiveAssignment(userID int64) (*domain.WorkerAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, position_id, reference_date, reference_index, is_active, created_at
		FROM worker_assignments
		WHERE user_id = $1 AND is_active = true
	`

	assignment := &domain.WorkerAssignment{
		UserID: userID,
	}

	dst := []any{&assignment.ID, &assignment.PositionID, &assignment.ReferenceDate, &assignment.ReferenceIndex, &assignment.IsActive, &assignment.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

// ReplaceAssignment deactivates the worker's previous assignment and inserts
// the new one in a single transaction. The rotation reference is replaced
// wholesale, never patched.
func (r *Repository) ReplaceAssignment(assignment *domain.WorkerAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE worker_assignments SET is_active = false WHERE user_id = $1 AND is_active = true`
	if _, err := tx.ExecContext(ctx, query, assignment.UserID); err != nil {
		return err
	}

	query = `
		INSERT INTO worker_assignments (user_id, position_id, reference_date, reference_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at
	`
	args := []any{assignment.UserID, assignment.PositionID, assignment.ReferenceDate, assignment.ReferenceIndex}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.IsActive, &assignment.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
