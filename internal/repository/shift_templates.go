package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

const templateColumns = `
	position_id, rotation_index, iso_week,
	monday_shift, tuesday_shift, wednesday_shift, thursday_shift, friday_shift, saturday_shift, sunday_shift,
	monday_label, tuesday_label, wednesday_label, thursday_label, friday_label, saturday_label, sunday_label,
	created_at
`

func templateScanTargets(template *domain.ShiftTemplate, labels *[7]sql.NullString) []any {
	return []any{
		&template.PositionID, &template.RotationIndex, &template.ISOWeek,
		&template.Days[0], &template.Days[1], &template.Days[2], &template.Days[3], &template.Days[4], &template.Days[5], &template.Days[6],
		&labels[0], &labels[1], &labels[2], &labels[3], &labels[4], &labels[5], &labels[6],
		&template.CreatedAt,
	}
}

func applyTemplateLabels(template *domain.ShiftTemplate, labels [7]sql.NullString) {
	for i := range labels {
		if labels[i].Valid {
			template.Labels[i] = labels[i].String
		}
	}
}

// GetTemplate returns (nil, nil) when no row exists for the key. The engine
// treats that as "no data", distinct from an explicit day off.
func (r *Repository) GetTemplate(positionID int64, rotationIndex int, isoWeek int) (*domain.ShiftTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, ` + templateColumns + `
		FROM shift_templates
		WHERE position_id = $1 AND rotation_index = $2 AND iso_week = $3
	`

	template := &domain.ShiftTemplate{}
	var labels [7]sql.NullString
	dst := append([]any{&template.ID}, templateScanTargets(template, &labels)...)

	if err := r.dbpool.QueryRowContext(ctx, query, positionID, rotationIndex, isoWeek).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	applyTemplateLabels(template, labels)

	return template, nil
}

func (r *Repository) GetTemplatesForPosition(positionID int64) ([]*domain.ShiftTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, ` + templateColumns + `
		FROM shift_templates
		WHERE position_id = $1
		ORDER BY iso_week, rotation_index
	`

	rows, err := r.dbpool.QueryContext(ctx, query, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ShiftTemplate, 0)
	for rows.Next() {
		template := &domain.ShiftTemplate{}
		var labels [7]sql.NullString
		dst := append([]any{&template.ID}, templateScanTargets(template, &labels)...)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		applyTemplateLabels(template, labels)
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// ReplaceShiftTemplates swaps the position's whole template set inside one
// transaction: delete everything, then insert the new rows. A re-import can
// therefore never leave stale cells from a previous version behind, and no
// reader observes the empty window between the two steps.
func (r *Repository) ReplaceShiftTemplates(positionID int64, templates []*domain.ShiftTemplate) ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM shift_templates WHERE position_id = $1`
	if _, err := tx.ExecContext(ctx, query, positionID); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(templates))
	for _, template := range templates {
		query = `
			INSERT INTO shift_templates (
				position_id, rotation_index, iso_week,
				monday_shift, tuesday_shift, wednesday_shift, thursday_shift, friday_shift, saturday_shift, sunday_shift,
				monday_label, tuesday_label, wednesday_label, thursday_label, friday_label, saturday_label, sunday_label
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id, created_at
		`

		args := []any{
			positionID, template.RotationIndex, template.ISOWeek,
			template.Days[0], template.Days[1], template.Days[2], template.Days[3], template.Days[4], template.Days[5], template.Days[6],
			nullableLabel(template.Labels[0]), nullableLabel(template.Labels[1]), nullableLabel(template.Labels[2]), nullableLabel(template.Labels[3]),
			nullableLabel(template.Labels[4]), nullableLabel(template.Labels[5]), nullableLabel(template.Labels[6]),
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&template.ID, &template.CreatedAt); err != nil {
			return nil, err
		}
		template.PositionID = positionID
		ids = append(ids, template.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return ids, nil
}

func nullableLabel(label string) sql.NullString {
	return sql.NullString{String: label, Valid: label != ""}
}
