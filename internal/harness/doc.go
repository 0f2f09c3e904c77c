// Package harness runs scripted catalog scenarios for conformance testing.
//
// A scenario seeds a fresh catalog, performs a list of add, delete and view
// steps, and checks the outcome of each step plus a set of assertions over
// the final catalog and the session journal.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	session_id: test-session-001   # optional
//	seeds:
//	  - { title: "Dune", genre: "Sci-Fi" }
//	steps:
//	  - add: { title: "dune", genre: "Drama" }
//	    expect: { ok: false, code: duplicate_title }
//	  - delete: { title: "DUNE" }
//	  - view: true
//	assertions:
//	  - type: final_titles
//	    titles: ["1984"]
//	  - type: trace_count
//	    op: add
//	    count: 1
//
// # Assertion Types
//
//   - final_titles: the catalog holds exactly these titles, in order
//   - book_count: the catalog holds exactly count books
//   - titles_unique: no two books share a folded title
//   - trace_contains: the journal has an entry with the given op (and code, title)
//   - trace_count: the journal has exactly count entries with the given op (and code)
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory journal and a fixed session id, so the
// journal trace is byte-identical between runs and can be compared against
// golden files with RunWithGolden.
package harness
