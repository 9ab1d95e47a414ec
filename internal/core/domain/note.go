package domain

import "time"

// NoteType enumerates the closed set of note categories.
type NoteType string

const (
	NoteTypePersonal NoteType = "personal"
	NoteTypeWork     NoteType = "work"
	NoteTypeOther    NoteType = "other"
)

// MaxNoteLength bounds the note text column.
const MaxNoteLength = 1000

// Valid reports whether the type is one of the enumerated values.
func (t NoteType) Valid() bool {
	switch t {
	case NoteTypePersonal, NoteTypeWork, NoteTypeOther:
		return true
	}
	return false
}

// Note is a short text record owned by an account. Rows are cascade-deleted
// with their owner at the schema level.
type Note struct {
	ID        string
	Text      string
	Type      NoteType
	AccountID string
	CreatedAt time.Time
}
