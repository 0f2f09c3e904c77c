package harness

import "github.com/roach88/bookshelf/internal/journal"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// SessionID is the journal session the scenario ran under.
	SessionID string `json:"session_id"`

	// Trace holds the session's journal entries in seq order.
	Trace []journal.Entry `json:"trace"`

	// Titles are the final catalog titles in insertion order.
	Titles []string `json:"titles"`

	// Errors contains one message per failed expectation or assertion.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []journal.Entry{},
		Titles: []string{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
