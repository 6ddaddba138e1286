package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// UserRepo implements ports.UserRepository with pgx.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts an account and fills in the generated ID and timestamps.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Name, u.Password).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, email, name, password, COALESCE(safety_code, ''), created_at, updated_at
		FROM users WHERE `+where, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.Password, &u.SafetyCode, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user, or nil when missing.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByEmail returns a user by email, or nil when missing.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

// GetBySafetyCode returns the owner of a safety code, or nil.
func (r *UserRepo) GetBySafetyCode(ctx context.Context, code string) (*domain.User, error) {
	return r.getBy(ctx, "safety_code = $1", code)
}

// SetSafetyCode stores the user's safety code.
func (r *UserRepo) SetSafetyCode(ctx context.Context, userID, code string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET safety_code = $2, updated_at = now() WHERE id = $1
	`, userID, code)
	return err
}
