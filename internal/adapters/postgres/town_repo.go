package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// TownRepo implements ports.TownRepository with pgx. Each town row
// carries its raw embedded place records as a JSONB array; decoding
// them into canonical places happens in the places package.
type TownRepo struct {
	db *DB
}

// NewTownRepo creates a new TownRepo.
func NewTownRepo(db *DB) *TownRepo {
	return &TownRepo{db: db}
}

// List returns every town document.
func (r *TownRepo) List(ctx context.Context) ([]domain.Town, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(places, '[]') FROM towns ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var towns []domain.Town
	for rows.Next() {
		var t domain.Town
		if err := rows.Scan(&t.ID, &t.Name, &t.Places); err != nil {
			return nil, err
		}
		towns = append(towns, t)
	}
	return towns, rows.Err()
}

// GetByID returns one town, or nil when missing.
func (r *TownRepo) GetByID(ctx context.Context, id string) (*domain.Town, error) {
	var t domain.Town
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(places, '[]') FROM towns WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Places)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
