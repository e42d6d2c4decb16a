package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hackmir/partsbot/internal/domain"
)

// PartRepo persists catalog records.
type PartRepo struct {
	db *sqlx.DB
}

// NewPartRepo wraps the shared connection pool.
func NewPartRepo(db *sqlx.DB) *PartRepo {
	return &PartRepo{db: db}
}

// List returns the full catalog ordered by name.
func (r *PartRepo) List(ctx context.Context) ([]domain.Part, error) {
	var parts []domain.Part
	err := r.db.SelectContext(ctx, &parts,
		`SELECT id, name, condition, price FROM parts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

// SearchByName returns parts matching the name substring, case-insensitive.
func (r *PartRepo) SearchByName(ctx context.Context, name string) ([]domain.Part, error) {
	var parts []domain.Part
	err := r.db.SelectContext(ctx, &parts,
		`SELECT id, name, condition, price FROM parts WHERE name ILIKE $1 ORDER BY name`,
		"%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return parts, nil
}

// Create inserts a catalog record and returns its id.
func (r *PartRepo) Create(ctx context.Context, part domain.Part) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO parts (name, condition, price) VALUES ($1, $2, $3) RETURNING id`,
		part.Name, part.Condition, part.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create part: %w", err)
	}
	return id, nil
}
