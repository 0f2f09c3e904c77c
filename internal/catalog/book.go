package catalog

import (
	"fmt"
	"strings"
)

// Book is a single catalog entry. The zero value is not a valid Book; use NewBook.
type Book struct {
	title string
	genre Genre
}

// NewBook validates title and genre and returns the constructed Book.
//
// Returns a *ValidationError wrapping ErrEmptyTitle if title is blank, or
// ErrInvalidGenre if genre is not in the allow-list. The title is stored
// exactly as given.
func NewBook(title, genre string) (Book, error) {
	if strings.TrimSpace(title) == "" {
		return Book{}, &ValidationError{Field: "title", Value: title, Err: ErrEmptyTitle}
	}
	if !IsAllowedGenre(genre) {
		return Book{}, &ValidationError{Field: "genre", Value: genre, Err: ErrInvalidGenre}
	}
	return Book{title: title, genre: Genre(genre)}, nil
}

// Title returns the title with its original casing.
func (b Book) Title() string {
	return b.title
}

// Genre returns the book's genre.
func (b Book) Genre() Genre {
	return b.genre
}

// String renders the book as Book(title='...', genre='...').
func (b Book) String() string {
	return fmt.Sprintf("Book(title='%s', genre='%s')", b.title, b.genre)
}
