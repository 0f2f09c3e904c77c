package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookValidGenre(t *testing.T) {
	for _, g := range AllowedGenres() {
		t.Run(string(g), func(t *testing.T) {
			b, err := NewBook("Valid Genre Book", string(g))
			require.NoError(t, err)
			assert.Equal(t, "Valid Genre Book", b.Title())
			assert.Equal(t, g, b.Genre())
		})
	}
}

func TestNewBookInvalidGenre(t *testing.T) {
	tests := []string{"Historical", "Mystery", "", "sci-fi", "TEEN", " Drama"}

	for _, genre := range tests {
		t.Run(genre, func(t *testing.T) {
			_, err := NewBook("Invalid Genre Book", genre)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGenre)
			assert.True(t, IsValidationError(err))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "genre", ve.Field)
			assert.Equal(t, genre, ve.Value)
		})
	}
}

func TestNewBookInvalidGenreMessageListsAllowed(t *testing.T) {
	_, err := NewBook("X", "Mystery")
	require.Error(t, err)
	assert.Equal(t,
		"Genre 'Mystery' is not allowed. Allowed genres: Adventure, Comedy, Drama, Sci-Fi, Teen",
		err.Error())
}

func TestNewBookEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t"} {
		_, err := NewBook(title, "Drama")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.NotErrorIs(t, err, ErrInvalidGenre)
	}
}

func TestBookString(t *testing.T) {
	b, err := NewBook("The Hunger Games", "Teen")
	require.NoError(t, err)
	assert.Equal(t, "Book(title='The Hunger Games', genre='Teen')", b.String())
}

func TestBookPreservesTitleCase(t *testing.T) {
	b, err := NewBook("tHe HoBbIt", "Adventure")
	require.NoError(t, err)
	assert.Equal(t, "tHe HoBbIt", b.Title())
}

func TestAllowedGenresSorted(t *testing.T) {
	genres := AllowedGenres()
	require.Len(t, genres, 5)
	assert.Equal(t, []Genre{"Adventure", "Comedy", "Drama", "Sci-Fi", "Teen"}, genres)

	// Callers get a copy.
	genres[0] = "Horror"
	assert.Equal(t, GenreAdventure, AllowedGenres()[0])
	assert.False(t, IsAllowedGenre("Horror"))
}

func TestAllowedGenreList(t *testing.T) {
	assert.Equal(t, "Adventure, Comedy, Drama, Sci-Fi, Teen", AllowedGenreList())
}

func TestSameTitle(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Dune", "dune", true},
		{"THE HUNGER GAMES", "The Hunger Games", true},
		{"1984", "1984", true},
		{"Dune", "Dune Messiah", false},
		{"Dune", " Dune", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, SameTitle(tt.a, tt.b))
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, CodeOK, Code(nil))
	assert.Equal(t, CodeDuplicateTitle, Code(ErrDuplicateTitle))
	assert.Equal(t, CodeInvalidGenre, Code(&ValidationError{Field: "genre", Err: ErrInvalidGenre}))
	assert.Equal(t, CodeEmptyTitle, Code(&ValidationError{Field: "title", Err: ErrEmptyTitle}))
	assert.Equal(t, CodeNotFound, Code(ErrNotFound))
	assert.Equal(t, CodeUnknown, Code(errors.New("boom")))
}
