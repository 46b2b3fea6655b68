package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

const patternColumns = `
	rotation_index,
	monday_shift, tuesday_shift, wednesday_shift, thursday_shift, friday_shift, saturday_shift, sunday_shift,
	morning_start, morning_end, afternoon_start, afternoon_end, night_start, night_end,
	is_active, created_at, version
`

// GetActivePattern returns (nil, nil) when no active row exists for the
// index; the engine reports that as a data error itself.
func (r *Repository) GetActivePattern(rotationIndex int) (*domain.RotationPattern, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, ` + patternColumns + `
		FROM rotation_patterns
		WHERE rotation_index = $1 AND is_active = true
	`

	pattern := &domain.RotationPattern{}
	dst := []any{
		&pattern.ID,
		&pattern.RotationIndex,
		&pattern.Days[0], &pattern.Days[1], &pattern.Days[2], &pattern.Days[3], &pattern.Days[4], &pattern.Days[5], &pattern.Days[6],
		&pattern.MorningStart, &pattern.MorningEnd, &pattern.AfternoonStart, &pattern.AfternoonEnd, &pattern.NightStart, &pattern.NightEnd,
		&pattern.IsActive, &pattern.CreatedAt, &pattern.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, rotationIndex).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return pattern, nil
}

func (r *Repository) GetAllActivePatterns() ([]*domain.RotationPattern, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, ` + patternColumns + `
		FROM rotation_patterns
		WHERE is_active = true
		ORDER BY rotation_index
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patterns := make([]*domain.RotationPattern, 0)
	for rows.Next() {
		pattern := &domain.RotationPattern{}
		dst := []any{
			&pattern.ID,
			&pattern.RotationIndex,
			&pattern.Days[0], &pattern.Days[1], &pattern.Days[2], &pattern.Days[3], &pattern.Days[4], &pattern.Days[5], &pattern.Days[6],
			&pattern.MorningStart, &pattern.MorningEnd, &pattern.AfternoonStart, &pattern.AfternoonEnd, &pattern.NightStart, &pattern.NightEnd,
			&pattern.IsActive, &pattern.CreatedAt, &pattern.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// CreateRotationPattern inserts a new, inactive pattern version. Activation
// is a separate step so editors can stage rows before swapping them in.
func (r *Repository) CreateRotationPattern(pattern *domain.RotationPattern) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO rotation_patterns (
			rotation_index,
			monday_shift, tuesday_shift, wednesday_shift, thursday_shift, friday_shift, saturday_shift, sunday_shift,
			morning_start, morning_end, afternoon_start, afternoon_end, night_start, night_end
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, is_active, created_at, version
	`

	args := []any{
		pattern.RotationIndex,
		pattern.Days[0], pattern.Days[1], pattern.Days[2], pattern.Days[3], pattern.Days[4], pattern.Days[5], pattern.Days[6],
		pattern.MorningStart, pattern.MorningEnd, pattern.AfternoonStart, pattern.AfternoonEnd, pattern.NightStart, pattern.NightEnd,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&pattern.ID, &pattern.IsActive, &pattern.CreatedAt, &pattern.Version); err != nil {
		return err
	}

	return nil
}

// ActivateRotationPattern swaps the active row for the pattern's rotation
// index in one transaction, so at no point are two rows active at once.
func (r *Repository) ActivateRotationPattern(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var rotationIndex int
	query := `SELECT rotation_index FROM rotation_patterns WHERE id = $1`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&rotationIndex); err != nil {
		return err
	}

	query = `UPDATE rotation_patterns SET is_active = false WHERE rotation_index = $1 AND is_active = true`
	if _, err := tx.ExecContext(ctx, query, rotationIndex); err != nil {
		return err
	}

	query = `UPDATE rotation_patterns SET is_active = true, version = version + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
