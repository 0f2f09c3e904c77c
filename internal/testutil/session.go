package testutil

// DefaultSessionID is used when a scenario does not name its session.
const DefaultSessionID = "test-session-default"

// FixedSessionGenerator generates the same session id every time.
//
// A scenario run with the same FixedSessionGenerator produces byte-identical
// journal traces, which keeps golden files stable.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator that always returns id.
// If id is empty, Generate returns DefaultSessionID.
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session id.
//
// Implements journal.SessionIDGenerator.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
