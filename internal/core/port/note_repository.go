package port

import (
	"context"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note domain.Note) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Note, error)
}
