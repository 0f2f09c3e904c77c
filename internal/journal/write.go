package journal

import (
	"context"
	"fmt"

	"github.com/roach88/bookshelf/internal/catalog"
)

// StartSession registers a session. Registering the same id twice is a no-op.
func (j *Journal) StartSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("start session: empty session id")
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_seq)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, sessionID, j.clock.Current())
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// Append writes ev as the next entry of the session and returns the stored entry.
//
// The session must have been registered with StartSession (foreign key constraint).
func (j *Journal) Append(ctx context.Context, sessionID string, ev catalog.Event) (Entry, error) {
	entry := Entry{
		Seq:       j.clock.Next(),
		SessionID: sessionID,
		Op:        string(ev.Op),
		Title:     ev.Title,
		Genre:     ev.Genre,
		OK:        ev.OK,
		Code:      ev.Code,
		Message:   ev.Message,
		Count:     ev.Count,
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO entries
		(seq, session_id, op, title, genre, ok, code, message, book_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Seq,
		entry.SessionID,
		entry.Op,
		entry.Title,
		entry.Genre,
		boolToInt(entry.OK),
		entry.Code,
		entry.Message,
		entry.Count,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("append entry: %w", err)
	}

	return entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
