package repository

import (
	"context"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

func (r *Repository) CreateImportLog(log *domain.ImportLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO import_logs (actor_id, label, status, records_processed, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	args := []any{log.ActorID, log.Label, log.Status, log.RecordsProcessed, log.Metadata}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&log.ID, &log.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllImportLogs() ([]*domain.ImportLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, actor_id, label, status, records_processed, metadata, created_at
		FROM import_logs
		ORDER BY created_at DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.ImportLog, 0)
	for rows.Next() {
		log := &domain.ImportLog{}
		dst := []any{&log.ID, &log.ActorID, &log.Label, &log.Status, &log.RecordsProcessed, &log.Metadata, &log.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
