package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

func (r *Repository) GetAllPositions() ([]*domain.Position, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			p.id,
			p.name,
			p.family,
			p.created_at,
			p.version,
			pcw.cycle_week
		FROM positions p
		LEFT JOIN position_cycle_weeks pcw ON p.id = pcw.position_id
		ORDER BY p.id, pcw.cycle_week
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positionsMap := make(map[int64]*domain.Position)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID        int64
			Name      string
			Family    string
			CreatedAt time.Time
			Version   int32
			CycleWeek sql.NullInt32
		}

		dst := []any{&row.ID, &row.Name, &row.Family, &row.CreatedAt, &row.Version, &row.CycleWeek}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := positionsMap[row.ID]; !exists {
			positionsMap[row.ID] = &domain.Position{
				ID:         row.ID,
				Name:       row.Name,
				Family:     domain.PositionFamily(row.Family),
				CycleWeeks: make([]int32, 0),
				CreatedAt:  row.CreatedAt,
				Version:    row.Version,
			}
			order = append(order, row.ID)
		}

		if !row.CycleWeek.Valid {
			// The position takes part in no rotation index at all.
			continue
		}

		positionsMap[row.ID].CycleWeeks = append(positionsMap[row.ID].CycleWeeks, row.CycleWeek.Int32)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	positions := make([]*domain.Position, 0, len(order))
	for _, id := range order {
		positions = append(positions, positionsMap[id])
	}

	return positions, nil
}

func (r *Repository) GetPositionByID(id int64) (*domain.Position, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			p.name,
			p.family,
			p.created_at,
			p.version,
			pcw.cycle_week
		FROM positions p
		LEFT JOIN position_cycle_weeks pcw ON p.id = pcw.position_id
		WHERE p.id = $1
		ORDER BY pcw.cycle_week
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	position := &domain.Position{
		ID:         id,
		CycleWeeks: make([]int32, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			Name      string
			Family    string
			CreatedAt time.Time
			Version   int32
			CycleWeek sql.NullInt32
		}

		dst := []any{&row.Name, &row.Family, &row.CreatedAt, &row.Version, &row.CycleWeek}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			position.Name = row.Name
			position.Family = domain.PositionFamily(row.Family)
			position.CreatedAt = row.CreatedAt
			position.Version = row.Version
			found = true
		}

		if row.CycleWeek.Valid {
			position.CycleWeeks = append(position.CycleWeeks, row.CycleWeek.Int32)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return position, nil
}

// GetPositionByName returns (nil, nil) when no position carries the name,
// matching the importer's store contract.
func (r *Repository) GetPositionByName(name string) (*domain.Position, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT id FROM positions WHERE name = $1`

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return r.GetPositionByID(id)
}

func (r *Repository) CreatePosition(position *domain.Position) error {
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
		INSERT INTO positions (name, family)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, position.Name, position.Family).Scan(&position.ID, &position.CreatedAt, &position.Version); err != nil {
		return err
	}

	for _, week := range position.CycleWeeks {
		query = `
			INSERT INTO position_cycle_weeks (position_id, cycle_week)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, position.ID, week); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
