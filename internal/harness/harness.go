package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/bookshelf/internal/catalog"
	"github.com/roach88/bookshelf/internal/journal"
	"github.com/roach88/bookshelf/internal/testutil"
)

// Harness executes scenario steps against one catalog and journal.
type Harness struct {
	catalog   *catalog.Catalog
	journal   *journal.Journal
	sessionID string
	logger    *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh catalog and a fresh in-memory journal.
//
// Execution flow:
// 1. Open journal and register the fixed session
// 2. Seed the catalog (best effort)
// 3. Execute steps, checking expect clauses
// 4. Read the trace and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	j, err := journal.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	logger := testutil.DiscardLogger()
	sessionID := testutil.NewFixedSessionGenerator(scenario.SessionID).Generate()

	rec, err := journal.NewRecorder(ctx, j, sessionID, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	h := &Harness{
		catalog:   catalog.New(catalog.WithLogger(logger), catalog.WithRecorder(rec)),
		journal:   j,
		sessionID: sessionID,
		logger:    logger,
	}

	result := NewResult()
	result.SessionID = sessionID

	// Seed failures are part of the trace, not harness errors.
	_ = h.catalog.Initialize(scenario.Seeds)

	for i, step := range scenario.Steps {
		h.executeStep(i, step, result)
	}

	trace, err := j.Entries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	result.Trace = trace

	for _, b := range h.catalog.Books() {
		result.Titles = append(result.Titles, b.Title())
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep performs one step and checks its expect clause.
func (h *Harness) executeStep(i int, step Step, result *Result) {
	switch {
	case step.Add != nil:
		out := h.catalog.Add(step.Add.Title, step.Add.Genre)
		h.checkOutcome(i, out, step.Expect, result)
	case step.Delete != nil:
		out := h.catalog.Delete(step.Delete.Title)
		h.checkOutcome(i, out, step.Expect, result)
	case step.View:
		lines := slices.Collect(h.catalog.View())
		if step.Expect != nil && step.Expect.Lines != nil && len(lines) != *step.Expect.Lines {
			result.AddError(fmt.Sprintf("steps[%d]: expected %d listing lines, got %d", i, *step.Expect.Lines, len(lines)))
		}
	}
}

func (h *Harness) checkOutcome(i int, out catalog.Outcome, expect *ExpectClause, result *Result) {
	h.logger.Debug("step executed", "step", i, "ok", out.OK, "message", out.Message)
	if expect == nil {
		return
	}
	if expect.OK != nil && out.OK != *expect.OK {
		result.AddError(fmt.Sprintf("steps[%d]: expected ok=%t, got ok=%t (%s)", i, *expect.OK, out.OK, out.Message))
	}
	if expect.Code != "" {
		if code := catalog.Code(out.Err); code != expect.Code {
			result.AddError(fmt.Sprintf("steps[%d]: expected code %s, got %s", i, expect.Code, code))
		}
	}
	if expect.Message != "" && out.Message != expect.Message {
		result.AddError(fmt.Sprintf("steps[%d]: expected message %q, got %q", i, expect.Message, out.Message))
	}
}
