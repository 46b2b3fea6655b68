package repository

import (
	"context"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

// UpsertGeneratedShifts writes a generation run as one batched atomic upsert
// keyed by (user_id, work_date). Repeated generation over the same range is
// idempotent and concurrent regenerations for the same user cannot lose
// updates, because no read-modify-write is involved.
func (r *Repository) UpsertGeneratedShifts(shifts []*domain.GeneratedShift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO generated_shifts (user_id, work_date, start_time, end_time, shift_type, position_id, source, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, work_date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			shift_type = EXCLUDED.shift_type,
			position_id = EXCLUDED.position_id,
			source = EXCLUDED.source,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	for _, shift := range shifts {
		args := []any{shift.UserID, shift.Date, shift.StartTime, shift.EndTime, shift.ShiftType, shift.PositionID, shift.Source, shift.Notes}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetGeneratedShifts(userID int64, from, to time.Time) ([]*domain.GeneratedShift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, work_date, start_time, end_time, shift_type, position_id, source, notes, created_at, updated_at
		FROM generated_shifts
		WHERE user_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.GeneratedShift, 0)
	for rows.Next() {
		shift := &domain.GeneratedShift{}
		dst := []any{&shift.ID, &shift.UserID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.ShiftType, &shift.PositionID, &shift.Source, &shift.Notes, &shift.CreatedAt, &shift.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetGeneratedShift(userID int64, date time.Time) (*domain.GeneratedShift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, work_date, start_time, end_time, shift_type, position_id, source, notes, created_at, updated_at
		FROM generated_shifts
		WHERE user_id = $1 AND work_date = $2
	`

	shift := &domain.GeneratedShift{}
	dst := []any{&shift.ID, &shift.UserID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.ShiftType, &shift.PositionID, &shift.Source, &shift.Notes, &shift.CreatedAt, &shift.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, userID, date).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}
