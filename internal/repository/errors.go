package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a unique constraint rejected the write. For
	// account creation this is the authoritative uniqueness decision; the
	// earlier existence check is only a fast path.
	ErrDuplicate = errors.New("repository: duplicate")
)
