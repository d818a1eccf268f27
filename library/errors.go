package library

import "errors"

// Sentinel errors surfaced by the engine. Callers match with errors.Is; the
// CLI just displays them and re-prompts.
var (
	// ErrNotFound means the referenced student or book id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBlocked means the student is blocked for unpaid fines and may not
	// be issued new books.
	ErrBlocked = errors.New("student is blocked due to unpaid fines")

	// ErrNotAvailable means the book exists but has no copies on the shelf,
	// or the book id is unknown at issue time.
	ErrNotAvailable = errors.New("book not available")

	// ErrIssueLimit means the student already holds as many books as their
	// category allows.
	ErrIssueLimit = errors.New("issue limit reached")

	// ErrInvalidInput covers negative day counts and malformed adjustment
	// amounts.
	ErrInvalidInput = errors.New("invalid input")
)
