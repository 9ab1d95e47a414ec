package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
)

// NoteService manages per-account notes.
type NoteService struct {
	notes port.NoteRepository
	now   func() time.Time
}

// NewNoteService constructs a note service.
func NewNoteService(notes port.NoteRepository) *NoteService {
	return &NoteService{
		notes: notes,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateNote validates and persists a note owned by the account. Validation
// failures reject the note before anything reaches the repository.
func (s *NoteService) CreateNote(ctx context.Context, accountID, text, noteType string) (*domain.Note, error) {
	if accountID == "" {
		return nil, NewValidationError("account", "account is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, NewValidationError("note_text", "note text is required")
	}
	if utf8.RuneCountInString(text) > domain.MaxNoteLength {
		return nil, NewValidationError("note_text", fmt.Sprintf("note text must be at most %d characters", domain.MaxNoteLength))
	}
	typ := domain.NoteType(noteType)
	if !typ.Valid() {
		return nil, NewValidationError("note_type", "note type must be one of: personal, work, other")
	}

	note := domain.Note{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      typ,
		AccountID: accountID,
		CreatedAt: s.now(),
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return &note, nil
}

// ListNotes returns the account's notes, newest first.
func (s *NoteService) ListNotes(ctx context.Context, accountID string) ([]domain.Note, error) {
	if accountID == "" {
		return nil, NewValidationError("account", "account is required")
	}

	notes, err := s.notes.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}
