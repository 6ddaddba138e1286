package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/ports"
)

// NoteService handles notes, receipts and vouchers.
type NoteService struct {
	notes ports.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes ports.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// Create stores a note. Title is mandatory; unknown types collapse to
// the plain note type.
func (s *NoteService) Create(ctx context.Context, userID string, note *domain.Note) (*domain.Note, error) {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	switch note.Type {
	case domain.NoteTypeReceipt, domain.NoteTypeVoucher, domain.NoteTypePlain:
	default:
		note.Type = domain.NoteTypePlain
	}
	note.UserID = userID

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// List returns the user's notes, newest first.
func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// Delete removes one of the user's notes. Scoped to the caller's
// records; no match is a no-op reporting success.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.notes.Delete(ctx, noteID, userID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
