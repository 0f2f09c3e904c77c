package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bookshelf/internal/catalog"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SessionID is an optional fixed journal session id.
	// If empty, testutil.DefaultSessionID is used.
	SessionID string `yaml:"session_id,omitempty"`

	// Seeds are applied with Catalog.Initialize before the steps.
	// Invalid seeds are skipped, as in a real session.
	Seeds []catalog.Seed `yaml:"seeds,omitempty"`

	// Steps are the catalog operations, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final catalog and the journal trace.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one catalog operation. Exactly one of Add, Delete or View is set.
type Step struct {
	Add    *AddArgs    `yaml:"add,omitempty"`
	Delete *DeleteArgs `yaml:"delete,omitempty"`
	View   bool        `yaml:"view,omitempty"`

	// Expect, if set, is checked against the step's outcome.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// AddArgs are the arguments of an add step.
type AddArgs struct {
	Title string `yaml:"title"`
	Genre string `yaml:"genre"`
}

// DeleteArgs are the arguments of a delete step.
type DeleteArgs struct {
	Title string `yaml:"title"`
}

// ExpectClause specifies the expected outcome of a step.
// Only the fields that are set are checked.
type ExpectClause struct {
	OK      *bool  `yaml:"ok,omitempty"`
	Code    string `yaml:"code,omitempty"`
	Message string `yaml:"message,omitempty"`

	// Lines is the expected number of listing lines (view steps only).
	Lines *int `yaml:"lines,omitempty"`
}

// Assertion validates the final catalog or the journal trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op filters trace entries (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Code filters trace entries by outcome code (trace_contains, trace_count).
	Code string `yaml:"code,omitempty"`

	// Title filters trace entries by folded title (trace_contains).
	Title string `yaml:"title,omitempty"`

	// Titles is the expected final title list (final_titles).
	Titles []string `yaml:"titles,omitempty"`

	// Count is the expected number (book_count, trace_count).
	Count *int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalTitles   = "final_titles"
	AssertBookCount     = "book_count"
	AssertTitlesUnique  = "titles_unique"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
)

var validOps = map[string]bool{
	string(catalog.OpSeed):   true,
	string(catalog.OpAdd):    true,
	string(catalog.OpView):   true,
	string(catalog.OpDelete): true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		actions := 0
		if step.Add != nil {
			actions++
		}
		if step.Delete != nil {
			actions++
		}
		if step.View {
			actions++
		}
		if actions != 1 {
			return fmt.Errorf("steps[%d]: exactly one of add, delete, view is required", i)
		}
		if step.Expect != nil && step.Expect.Lines != nil && !step.View {
			return fmt.Errorf("steps[%d].expect: lines is only valid for view steps", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalTitles:
		if a.Titles == nil {
			return fmt.Errorf("assertions[%d]: titles is required for final_titles", index)
		}
	case AssertBookCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for book_count", index)
		}
	case AssertTitlesUnique:
	case AssertTraceContains:
		if !validOps[a.Op] {
			return fmt.Errorf("assertions[%d]: valid op is required for trace_contains, got %q", index, a.Op)
		}
	case AssertTraceCount:
		if !validOps[a.Op] {
			return fmt.Errorf("assertions[%d]: valid op is required for trace_count, got %q", index, a.Op)
		}
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
