package catalog

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCatalog returns a catalog holding two known books.
func newTestCatalog(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	c := New(opts...)
	errs := c.Initialize([]Seed{
		{Title: "Test Book 1", Genre: "Sci-Fi"},
		{Title: "Test Book 2", Genre: "Teen"},
	})
	require.Empty(t, errs)
	require.Equal(t, 2, c.Len())
	return c
}

func titles(c *Catalog) []string {
	var out []string
	for _, b := range c.Books() {
		out = append(out, b.Title())
	}
	return out
}

func TestAddSuccess(t *testing.T) {
	c := newTestCatalog(t)

	out := c.Add("New Adventure", "Adventure")
	require.True(t, out.OK)
	assert.NoError(t, out.Err)
	assert.Equal(t, "Success: Book 'New Adventure' added to the library.", out.Message)
	assert.Equal(t, 3, c.Len())

	books := c.Books()
	last := books[len(books)-1]
	assert.Equal(t, "New Adventure", last.Title())
	assert.Equal(t, GenreAdventure, last.Genre())
}

func TestAddDuplicateTitle(t *testing.T) {
	c := newTestCatalog(t)

	out := c.Add("test book 1", "Drama")
	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrDuplicateTitle)
	assert.Equal(t, "Error: Book with title 'test book 1' already exists.", out.Message)
	assert.Equal(t, 2, c.Len())
}

func TestAddDuplicateTitleWinsOverInvalidGenre(t *testing.T) {
	c := newTestCatalog(t)

	out := c.Add("TEST BOOK 2", "Mystery")
	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrDuplicateTitle)
	assert.NotErrorIs(t, out.Err, ErrInvalidGenre)
	assert.Equal(t, 2, c.Len())
}

func TestAddInvalidGenre(t *testing.T) {
	c := newTestCatalog(t)
	before := c.Books()

	out := c.Add("Invalid Genre Book", "Mystery")
	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrInvalidGenre)
	assert.Equal(t,
		"Error adding book: Genre 'Mystery' is not allowed. Allowed genres: Adventure, Comedy, Drama, Sci-Fi, Teen",
		out.Message)
	assert.Equal(t, before, c.Books())
}

func TestAddEmptyTitle(t *testing.T) {
	c := newTestCatalog(t)

	out := c.Add("  ", "Drama")
	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrEmptyTitle)
	assert.Equal(t, 2, c.Len())
}

func TestDeleteSuccess(t *testing.T) {
	c := newTestCatalog(t)

	out := c.Delete("Test Book 1")
	require.True(t, out.OK)
	assert.Equal(t, "Success: Book 'Test Book 1' deleted from the library.", out.Message)
	assert.Equal(t, 1, c.Len())
	assert.NotContains(t, titles(c), "Test Book 1")
	assert.Contains(t, titles(c), "Test Book 2")
}

func TestDeleteNotFound(t *testing.T) {
	c := newTestCatalog(t)
	before := titles(c)

	out := c.Delete("Non Existent Book")
	assert.False(t, out.OK)
	assert.ErrorIs(t, out.Err, ErrNotFound)
	assert.Equal(t, "Error: Book with title 'Non Existent Book' not found.", out.Message)
	assert.Equal(t, before, titles(c))
}

func TestDeletePreservesOrder(t *testing.T) {
	c := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	for i := range 5 {
		require.True(t, c.Add(fmt.Sprintf("Book %d", i), "Comedy").OK)
	}

	require.True(t, c.Delete("book 2").OK)
	assert.Equal(t, []string{"Book 0", "Book 1", "Book 3", "Book 4"}, titles(c))
}

func TestAddThenDeleteRestoresCatalog(t *testing.T) {
	variants := []string{"Brave New World", "brave new world", "BRAVE NEW WORLD", "bRaVe NeW wOrLd"}

	for _, v := range variants {
		t.Run(v, func(t *testing.T) {
			c := newTestCatalog(t)
			before := c.Books()

			require.True(t, c.Add("Brave New World", "Sci-Fi").OK)
			require.True(t, c.Delete(v).OK)
			assert.Equal(t, before, c.Books())
		})
	}
}

func TestTitlesStayUnique(t *testing.T) {
	c := newTestCatalog(t)
	ops := []struct {
		add   bool
		title string
		genre string
	}{
		{true, "Alpha", "Drama"},
		{true, "alpha", "Drama"},
		{true, "ALPHA", "Teen"},
		{false, "Alpha", ""},
		{true, "aLpHa", "Comedy"},
		{true, "Beta", "Nope"},
		{true, "beta", "Adventure"},
		{true, "BETA", "Adventure"},
	}

	for _, op := range ops {
		if op.add {
			c.Add(op.title, op.genre)
		} else {
			c.Delete(op.title)
		}

		seen := map[string]bool{}
		for _, b := range c.Books() {
			key := strings.ToLower(b.Title())
			require.False(t, seen[key], "duplicate title %q", b.Title())
			seen[key] = true
			require.True(t, IsAllowedGenre(string(b.Genre())))
		}
	}
	assert.Equal(t, []string{"Test Book 1", "Test Book 2", "aLpHa", "beta"}, titles(c))
}

func TestInitializeBestEffort(t *testing.T) {
	var logs bytes.Buffer
	c := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	errs := c.Initialize([]Seed{
		{Title: "The Hunger Games", Genre: "Teen"},
		{Title: "Bad Seed", Genre: "Horror"},
		{Title: "Dune", Genre: "Sci-Fi"},
		{Title: "dune", Genre: "Drama"},
		{Title: "To Kill a Mockingbird", Genre: "Drama"},
	})

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrInvalidGenre)
	assert.ErrorIs(t, errs[1], ErrDuplicateTitle)
	assert.Equal(t, []string{"The Hunger Games", "Dune", "To Kill a Mockingbird"}, titles(c))
	assert.Contains(t, logs.String(), "skipping seed book")
	assert.Contains(t, logs.String(), "Bad Seed")
}

func TestDefaultSeeds(t *testing.T) {
	c := New()
	require.Empty(t, c.Initialize(DefaultSeeds()))
	assert.Equal(t, []string{"The Hunger Games", "Dune", "To Kill a Mockingbird"}, titles(c))
}

func TestFind(t *testing.T) {
	c := newTestCatalog(t)

	b, ok := c.Find("TEST BOOK 2")
	require.True(t, ok)
	assert.Equal(t, "Test Book 2", b.Title())

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestViewEmpty(t *testing.T) {
	c := New()
	lines := slices.Collect(c.View())
	assert.Equal(t, []string{EmptyNotice}, lines)
}

func TestViewLists(t *testing.T) {
	c := newTestCatalog(t)
	lines := slices.Collect(c.View())

	require.Len(t, lines, 4)
	assert.Equal(t, ListingHeader, lines[0])
	assert.Equal(t, "Book(title='Test Book 1', genre='Sci-Fi')", lines[1])
	assert.Equal(t, "Book(title='Test Book 2', genre='Teen')", lines[2])
	assert.Equal(t, ListingFooter, lines[3])
}

func TestViewStopsEarly(t *testing.T) {
	c := newTestCatalog(t)

	var got []string
	for line := range c.View() {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestViewIsSnapshot(t *testing.T) {
	c := newTestCatalog(t)
	seq := c.View()
	require.True(t, c.Add("Later", "Drama").OK)

	assert.Len(t, slices.Collect(seq), 4)
	assert.Equal(t, 3, c.Len())
}

func TestRenderGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	seeded := New()
	require.Empty(t, seeded.Initialize(DefaultSeeds()))
	var buf bytes.Buffer
	require.NoError(t, seeded.Render(&buf))
	g.Assert(t, "listing_seeded", buf.Bytes())

	buf.Reset()
	require.NoError(t, New().Render(&buf))
	g.Assert(t, "listing_empty", buf.Bytes())
}

func TestRecorderSeesEveryOperation(t *testing.T) {
	var events []Event
	c := newTestCatalog(t, WithRecorder(RecorderFunc(func(ev Event) {
		events = append(events, ev)
	})))

	c.Add("dune", "Drama")
	c.Add("Dune", "Sci-Fi")
	c.Delete("nope")
	_ = slices.Collect(c.View())

	require.Len(t, events, 6)
	assert.Equal(t, OpSeed, events[0].Op)
	assert.Equal(t, 1, events[0].Count)

	assert.Equal(t, OpAdd, events[2].Op)
	assert.True(t, events[2].OK)
	assert.Equal(t, CodeOK, events[2].Code)
	assert.Equal(t, 3, events[2].Count)

	assert.Equal(t, OpAdd, events[3].Op)
	assert.False(t, events[3].OK)
	assert.Equal(t, CodeDuplicateTitle, events[3].Code)

	assert.Equal(t, OpDelete, events[4].Op)
	assert.Equal(t, CodeNotFound, events[4].Code)

	assert.Equal(t, OpView, events[5].Op)
	assert.Equal(t, "listed 3 book(s)", events[5].Message)
}

func TestConcurrentAdds(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Every title is added twice; only one of each pair may win.
			c.Add(fmt.Sprintf("Book %d", i/2), "Drama")
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, c.Len())
}

// The walkthrough scenario: duplicate, invalid genre, success, delete.
func TestCatalogWalkthrough(t *testing.T) {
	c := New()
	require.Empty(t, c.Initialize([]Seed{
		{Title: "The Hunger Games", Genre: "Teen"},
		{Title: "Dune", Genre: "Sci-Fi"},
	}))

	out := c.Add("dune", "Drama")
	assert.ErrorIs(t, out.Err, ErrDuplicateTitle)
	assert.Equal(t, 2, c.Len())

	out = c.Add("1984", "Mystery")
	assert.ErrorIs(t, out.Err, ErrInvalidGenre)
	assert.Equal(t, 2, c.Len())

	out = c.Add("1984", "Sci-Fi")
	require.True(t, out.OK)
	require.Equal(t, 3, c.Len())
	books := c.Books()
	assert.Equal(t, "1984", books[2].Title())
	assert.Equal(t, GenreSciFi, books[2].Genre())

	out = c.Delete("THE HUNGER GAMES")
	require.True(t, out.OK)
	assert.ElementsMatch(t, []string{"Dune", "1984"}, titles(c))
}
