// Package journal provides a SQLite-backed session journal for bookshelf.
//
// The journal is an append-only log of catalog operations. Every add, delete,
// view and seed attempt becomes one entry, whether it succeeded or not:
//   - Sessions: one row per catalog session, identified by a UUIDv7
//   - Entries: one row per operation, ordered by a logical seq clock
//
// # Lifetime
//
// The database lives in memory and disappears when the journal is closed.
// Nothing is written to disk; the catalog itself stays process-scoped.
//
// # Ordering
//
// All queries order by seq, never by wall-clock time, so a replayed session
// produces the same trace.
//
// A Recorder adapts a Journal to catalog.Recorder so a Catalog can feed it
// directly.
package journal
