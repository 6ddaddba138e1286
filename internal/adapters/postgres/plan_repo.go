package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// PlanRepo implements ports.PlanRepository with pgx. Locations and the
// route overlay live in JSONB columns.
type PlanRepo struct {
	db *DB
}

// NewPlanRepo creates a new PlanRepo.
func NewPlanRepo(db *DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// Create inserts a plan and fills in the generated ID and timestamps.
func (r *PlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO plans (user_id, title, date, description, locations, route)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Title, p.Date, p.Description, p.Locations, p.Route).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// ListByUser returns the user's plans, newest first.
func (r *PlanRepo) ListByUser(ctx context.Context, userID string) ([]domain.Plan, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, title, COALESCE(date, ''), COALESCE(description, ''),
		       COALESCE(locations, '[]'), route, created_at, updated_at
		FROM plans WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Date, &p.Description,
			&p.Locations, &p.Route, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// GetByID returns a plan, or nil when missing.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	var p domain.Plan
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, title, COALESCE(date, ''), COALESCE(description, ''),
		       COALESCE(locations, '[]'), route, created_at, updated_at
		FROM plans WHERE id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.Title, &p.Date, &p.Description,
		&p.Locations, &p.Route, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the user's plan, reporting whether a row went away.
func (r *PlanRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM plans WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
