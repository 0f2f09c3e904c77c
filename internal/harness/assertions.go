package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/bookshelf/internal/catalog"
	"github.com/roach88/bookshelf/internal/journal"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Trace    []journal.Entry // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, entry := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %q %s\n", entry.Seq, entry.Op, entry.Title, entry.Code)
	}

	return buf.String()
}

// EvaluateAssertions runs all assertions and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertFinalTitles:
		return assertFinalTitles(result, a)
	case AssertBookCount:
		return assertBookCount(result, a)
	case AssertTitlesUnique:
		return assertTitlesUnique(result)
	case AssertTraceContains:
		return assertTraceContains(result.Trace, a)
	case AssertTraceCount:
		return assertTraceCount(result.Trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertFinalTitles(result *Result, a Assertion) error {
	if slices.Equal(result.Titles, a.Titles) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalTitles,
		Expected: fmt.Sprintf("%q", a.Titles),
		Actual:   fmt.Sprintf("%q", result.Titles),
		Trace:    result.Trace,
	}
}

func assertBookCount(result *Result, a Assertion) error {
	if len(result.Titles) == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertBookCount,
		Expected: fmt.Sprintf("%d book(s)", *a.Count),
		Actual:   fmt.Sprintf("%d book(s)", len(result.Titles)),
		Trace:    result.Trace,
	}
}

func assertTitlesUnique(result *Result) error {
	for i, a := range result.Titles {
		for _, b := range result.Titles[i+1:] {
			if catalog.SameTitle(a, b) {
				return &AssertionError{
					Type:     AssertTitlesUnique,
					Expected: "pairwise distinct folded titles",
					Actual:   fmt.Sprintf("%q and %q collide", a, b),
					Trace:    result.Trace,
				}
			}
		}
	}
	return nil
}

// matchEntry reports whether entry satisfies the op/code/title filters of a.
func matchEntry(entry journal.Entry, a Assertion) bool {
	if entry.Op != a.Op {
		return false
	}
	if a.Code != "" && entry.Code != a.Code {
		return false
	}
	if a.Title != "" && !catalog.SameTitle(entry.Title, a.Title) {
		return false
	}
	return true
}

func describeFilter(a Assertion) string {
	desc := "op " + a.Op
	if a.Code != "" {
		desc += " code " + a.Code
	}
	if a.Title != "" {
		desc += fmt.Sprintf(" title %q", a.Title)
	}
	return desc
}

func assertTraceContains(trace []journal.Entry, a Assertion) error {
	if slices.ContainsFunc(trace, func(e journal.Entry) bool { return matchEntry(e, a) }) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describeFilter(a),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

func assertTraceCount(trace []journal.Entry, a Assertion) error {
	n := 0
	for _, e := range trace {
		if matchEntry(e, a) {
			n++
		}
	}
	if n == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d entries with %s", *a.Count, describeFilter(a)),
		Actual:   fmt.Sprintf("%d entries", n),
		Trace:    trace,
	}
}
