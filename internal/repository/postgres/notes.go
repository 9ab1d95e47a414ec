package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
)

const notesTable = "accounts.notes"

// NoteRepository implements port.NoteRepository using PostgreSQL. The
// account_id column carries ON DELETE CASCADE, so notes disappear with their
// owner.
type NoteRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewNoteRepository wires a PostgreSQL-backed note repository.
func NewNoteRepository(db pgExecutor) *NoteRepository {
	return &NoteRepository{
		exec:    db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new note row.
func (r *NoteRepository) Create(ctx context.Context, note domain.Note) error {
	stmt, args, err := r.builder.Insert(notesTable).
		Columns("id", "note_text", "note_type", "account_id", "created_at").
		Values(note.ID, note.Text, note.Type, note.AccountID, note.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert note sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	return nil
}

// ListByAccount returns the account's notes, newest first.
func (r *NoteRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Note, error) {
	stmt, args, err := r.builder.Select("id", "note_text", "note_type", "account_id", "created_at").
		From(notesTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notes sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.Text, &note.Type, &note.AccountID, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

var _ port.NoteRepository = (*NoteRepository)(nil)
