// Package storage provides sqlx-backed repositories for the directory and the
// parts catalog.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hackmir/partsbot/internal/domain"
)

// ScrapyardRepo persists directory records.
type ScrapyardRepo struct {
	db *sqlx.DB
}

// NewScrapyardRepo wraps the shared connection pool.
func NewScrapyardRepo(db *sqlx.DB) *ScrapyardRepo {
	return &ScrapyardRepo{db: db}
}

// List returns all scrapyards ordered by name.
func (r *ScrapyardRepo) List(ctx context.Context) ([]domain.Scrapyard, error) {
	var yards []domain.Scrapyard
	err := r.db.SelectContext(ctx, &yards,
		`SELECT id, name, vehicle_type, location, contact FROM scrapyards ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list scrapyards: %w", err)
	}
	return yards, nil
}

// Search returns scrapyards whose name or vehicle type matches the query.
func (r *ScrapyardRepo) Search(ctx context.Context, query string) ([]domain.Scrapyard, error) {
	var yards []domain.Scrapyard
	err := r.db.SelectContext(ctx, &yards,
		`SELECT id, name, vehicle_type, location, contact FROM scrapyards
		 WHERE name ILIKE $1 OR vehicle_type ILIKE $1 ORDER BY name`,
		"%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search scrapyards: %w", err)
	}
	return yards, nil
}

// Get returns one scrapyard by id.
func (r *ScrapyardRepo) Get(ctx context.Context, id int64) (domain.Scrapyard, error) {
	var yard domain.Scrapyard
	err := r.db.GetContext(ctx, &yard,
		`SELECT id, name, vehicle_type, location, contact FROM scrapyards WHERE id = $1`, id)
	if err != nil {
		return domain.Scrapyard{}, fmt.Errorf("get scrapyard %d: %w", id, err)
	}
	return yard, nil
}

// Create inserts a new scrapyard and returns its id.
func (r *ScrapyardRepo) Create(ctx context.Context, yard domain.Scrapyard) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO scrapyards (name, vehicle_type, location, contact)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		yard.Name, yard.VehicleType, yard.Location, yard.Contact).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create scrapyard: %w", err)
	}
	return id, nil
}

// Update rewrites all mutable fields of a scrapyard.
func (r *ScrapyardRepo) Update(ctx context.Context, yard domain.Scrapyard) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scrapyards SET name = $1, vehicle_type = $2, location = $3, contact = $4 WHERE id = $5`,
		yard.Name, yard.VehicleType, yard.Location, yard.Contact, yard.ID)
	if err != nil {
		return fmt.Errorf("update scrapyard %d: %w", yard.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update scrapyard %d: not found", yard.ID)
	}
	return nil
}

// Delete removes a scrapyard by id.
func (r *ScrapyardRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scrapyards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete scrapyard %d: %w", id, err)
	}
	return nil
}
