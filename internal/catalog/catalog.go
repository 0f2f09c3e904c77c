package catalog

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"sync"
)

// Listing lines produced by View.
const (
	EmptyNotice   = "The library is currently empty."
	ListingHeader = "\n--- Library Collection ---"
	ListingFooter = "------------------------\n"
)

// Outcome is the result of a mutating catalog operation.
type Outcome struct {
	// OK is true if the operation took effect.
	OK bool

	// Message is the human-readable result, suitable for showing verbatim.
	Message string

	// Err is nil on success; otherwise it matches one of the package sentinels.
	Err error
}

func success(format string, args ...any) Outcome {
	return Outcome{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failure(err error, format string, args ...any) Outcome {
	return Outcome{OK: false, Message: fmt.Sprintf(format, args...), Err: err}
}

// Seed is a (title, genre) pair applied by Initialize.
type Seed struct {
	Title string `yaml:"title" json:"title"`
	Genre string `yaml:"genre" json:"genre"`
}

// DefaultSeeds returns the books a new interactive session starts with.
func DefaultSeeds() []Seed {
	return []Seed{
		{Title: "The Hunger Games", Genre: "Teen"},
		{Title: "Dune", Genre: "Sci-Fi"},
		{Title: "To Kill a Mockingbird", Genre: "Drama"},
	}
}

// Catalog is an ordered collection of books with unique titles.
type Catalog struct {
	mu       sync.Mutex
	books    []Book
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder registers a Recorder that receives every operation.
func WithRecorder(r Recorder) Option {
	return func(c *Catalog) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize appends each seed in order.
//
// Seeding is best effort: a seed with an invalid genre or a title already in
// the catalog is logged and skipped, and the remaining seeds are still
// applied. The returned slice holds one error per skipped seed (nil if all
// seeds were applied).
func (c *Catalog) Initialize(seeds []Seed) []error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, s := range seeds {
		out := c.add(s.Title, s.Genre)
		c.record(OpSeed, s.Title, s.Genre, out)
		if !out.OK {
			c.logger.Warn("skipping seed book",
				"title", s.Title,
				"genre", s.Genre,
				"error", out.Err,
			)
			errs = append(errs, fmt.Errorf("seed %q: %w", s.Title, out.Err))
		}
	}
	c.logger.Debug("catalog initialized", "seeds", len(seeds), "books", len(c.books))
	return errs
}

// Add appends a new book.
//
// The duplicate-title check runs before genre validation, so a duplicate
// title with an invalid genre is reported as ErrDuplicateTitle. On any
// failure the catalog is unchanged.
func (c *Catalog) Add(title, genre string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.add(title, genre)
	c.record(OpAdd, title, genre, out)
	c.logger.Debug("add book", "title", title, "genre", genre, "ok", out.OK)
	return out
}

func (c *Catalog) add(title, genre string) Outcome {
	if c.indexOf(title) >= 0 {
		return failure(fmt.Errorf("%w: %q", ErrDuplicateTitle, title),
			"Error: Book with title '%s' already exists.", title)
	}

	b, err := NewBook(title, genre)
	if err != nil {
		return failure(err, "Error adding book: %v", err)
	}

	c.books = append(c.books, b)
	return success("Success: Book '%s' added to the library.", title)
}

// Delete removes the first book whose title matches after case folding.
// The order of the remaining books is preserved.
func (c *Catalog) Delete(title string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out Outcome
	if i := c.indexOf(title); i >= 0 {
		c.books = slices.Delete(c.books, i, i+1)
		out = success("Success: Book '%s' deleted from the library.", title)
	} else {
		out = failure(fmt.Errorf("%w: %q", ErrNotFound, title),
			"Error: Book with title '%s' not found.", title)
	}
	c.record(OpDelete, title, "", out)
	c.logger.Debug("delete book", "title", title, "ok", out.OK)
	return out
}

// View returns the catalog listing as a sequence of lines.
//
// An empty catalog yields EmptyNotice alone. Otherwise it yields
// ListingHeader, one Book.String() line per book in insertion order, and
// ListingFooter. The listing reflects the catalog at the time View is called.
func (c *Catalog) View() iter.Seq[string] {
	c.mu.Lock()
	snapshot := slices.Clone(c.books)
	c.record(OpView, "", "", Outcome{OK: true, Message: fmt.Sprintf("listed %d book(s)", len(snapshot))})
	c.mu.Unlock()

	return func(yield func(string) bool) {
		if len(snapshot) == 0 {
			yield(EmptyNotice)
			return
		}
		if !yield(ListingHeader) {
			return
		}
		for _, b := range snapshot {
			if !yield(b.String()) {
				return
			}
		}
		yield(ListingFooter)
	}
}

// Render writes the View listing to w, one line each.
func (c *Catalog) Render(w io.Writer) error {
	for line := range c.View() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("render catalog: %w", err)
		}
	}
	return nil
}

// Books returns a copy of the books in insertion order.
func (c *Catalog) Books() []Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.books)
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.books)
}

// Find returns the book whose title matches after case folding.
func (c *Catalog) Find(title string) (Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(title); i >= 0 {
		return c.books[i], true
	}
	return Book{}, false
}

// indexOf returns the index of the first book matching title, or -1.
// Caller must hold c.mu.
func (c *Catalog) indexOf(title string) int {
	key := foldTitle(title)
	return slices.IndexFunc(c.books, func(b Book) bool {
		return foldTitle(b.title) == key
	})
}

// record forwards an operation to the recorder. Caller must hold c.mu.
func (c *Catalog) record(op Op, title, genre string, out Outcome) {
	c.recorder.Record(Event{
		Op:      op,
		Title:   title,
		Genre:   genre,
		OK:      out.OK,
		Code:    Code(out.Err),
		Message: out.Message,
		Count:   len(c.books),
	})
}
