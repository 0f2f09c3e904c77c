// Package catalog provides the in-memory book catalog for bookshelf.
//
// The package has two parts:
//   - Book: an immutable record built by NewBook, which validates the genre
//     against a fixed allow-list
//   - Catalog: the ordered collection of books, which enforces that titles are
//     unique after case folding
//
// Catalog operations never panic on bad input. Add and Delete report their
// result as an Outcome carrying a boolean, a human-readable message and, on
// failure, an error that matches one of the package sentinels:
//
//	out := c.Add("Dune", "Sci-Fi")
//	if errors.Is(out.Err, catalog.ErrDuplicateTitle) {
//	    ...
//	}
//
// Insertion order is display order. A Catalog is safe for concurrent use; every
// operation holds the catalog mutex for its whole duration.
package catalog
