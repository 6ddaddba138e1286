package postgres

import (
	"context"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// NoteRepo implements ports.NoteRepository with pgx.
type NoteRepo struct {
	db *DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create inserts a note and fills in the generated ID and timestamps.
func (r *NoteRepo) Create(ctx context.Context, n *domain.Note) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO notes (user_id, title, content, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, n.UserID, n.Title, n.Content, n.Type).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// ListByUser returns the user's notes, newest first.
func (r *NoteRepo) ListByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, title, COALESCE(content, ''), type, created_at, updated_at
		FROM notes WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Type,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Delete removes the user's note, reporting whether a row went away.
func (r *NoteRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM notes WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
