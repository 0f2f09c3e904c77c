package catalog

import (
	"slices"
	"strings"
)

// Genre is a book genre. Only the values in the allow-list are valid.
type Genre string

const (
	GenreAdventure Genre = "Adventure"
	GenreComedy    Genre = "Comedy"
	GenreDrama     Genre = "Drama"
	GenreSciFi     Genre = "Sci-Fi"
	GenreTeen      Genre = "Teen"
)

// allowedGenres is kept sorted so listings and error messages are stable.
var allowedGenres = []Genre{
	GenreAdventure,
	GenreComedy,
	GenreDrama,
	GenreSciFi,
	GenreTeen,
}

// AllowedGenres returns the allow-list sorted alphabetically.
// The returned slice is a copy and may be modified by the caller.
func AllowedGenres() []Genre {
	return slices.Clone(allowedGenres)
}

// IsAllowedGenre reports whether s names an allowed genre.
// Matching is exact: "sci-fi" is not "Sci-Fi".
func IsAllowedGenre(s string) bool {
	return slices.Contains(allowedGenres, Genre(s))
}

// allowedGenreList renders the allow-list as "Adventure, Comedy, ...".
func allowedGenreList() string {
	names := make([]string, len(allowedGenres))
	for i, g := range allowedGenres {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

// AllowedGenreList returns the allow-list joined with ", " for display.
func AllowedGenreList() string {
	return allowedGenreList()
}
