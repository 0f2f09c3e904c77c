package journal

import (
	"context"
	"testing"

	"github.com/roach88/bookshelf/internal/catalog"
)

// createTestJournal opens a journal with one registered session.
func createTestJournal(t *testing.T, sessionID string) *Journal {
	t.Helper()
	j, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	if err := j.StartSession(context.Background(), sessionID); err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	return j
}

// addEvent builds a successful add event.
func addEvent(title, genre string, count int) catalog.Event {
	return catalog.Event{
		Op:      catalog.OpAdd,
		Title:   title,
		Genre:   genre,
		OK:      true,
		Code:    catalog.CodeOK,
		Message: "Success: Book '" + title + "' added to the library.",
		Count:   count,
	}
}
