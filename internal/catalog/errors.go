package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by catalog operations.
var (
	// ErrDuplicateTitle is reported by Add when a book with the same folded title exists.
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrInvalidGenre is reported when a genre is not in the allow-list.
	ErrInvalidGenre = errors.New("genre not allowed")

	// ErrEmptyTitle is reported when a title is empty or only whitespace.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrNotFound is reported by Delete when no book matches the title.
	ErrNotFound = errors.New("book not found")
)

// ValidationError describes a Book that could not be constructed.
type ValidationError struct {
	// Field is the offending field: "title" or "genre".
	Field string

	// Value is the rejected input.
	Value string

	// Err is the sentinel the failure matches (ErrInvalidGenre or ErrEmptyTitle).
	Err error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrInvalidGenre) {
		return fmt.Sprintf("Genre '%s' is not allowed. Allowed genres: %s", e.Value, allowedGenreList())
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError returns true if err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Error codes used in journal entries and JSON output.
const (
	CodeOK             = "ok"
	CodeDuplicateTitle = "duplicate_title"
	CodeInvalidGenre   = "invalid_genre"
	CodeEmptyTitle     = "empty_title"
	CodeNotFound       = "not_found"
	CodeUnknown        = "error"
)

// Code maps err to a stable machine-readable code. A nil error maps to CodeOK.
func Code(err error) string {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrDuplicateTitle):
		return CodeDuplicateTitle
	case errors.Is(err, ErrInvalidGenre):
		return CodeInvalidGenre
	case errors.Is(err, ErrEmptyTitle):
		return CodeEmptyTitle
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeUnknown
	}
}
