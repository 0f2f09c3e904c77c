package journal

import (
	"context"
	"fmt"
)

// Entry is one journaled catalog operation.
type Entry struct {
	Seq       int64  `json:"seq"`
	SessionID string `json:"session_id"`
	Op        string `json:"op"`
	Title     string `json:"title,omitempty"`
	Genre     string `json:"genre,omitempty"`
	OK        bool   `json:"ok"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Count     int    `json:"book_count"`
}

// Summary aggregates a session's entries.
type Summary struct {
	SessionID string         `json:"session_id"`
	Total     int            `json:"total"`
	Failures  int            `json:"failures"`
	ByOp      map[string]int `json:"by_op"`
	LastCount int            `json:"book_count"`
}

// Entries returns all entries of a session ordered by seq.
// Returns an empty slice for an unknown session.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, session_id, op, title, genre, ok, code, message, book_count
		FROM entries
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var ok int
		if err := rows.Scan(&e.Seq, &e.SessionID, &e.Op, &e.Title, &e.Genre, &ok, &e.Code, &e.Message, &e.Count); err != nil {
			return nil, fmt.Errorf("read entries: scan: %w", err)
		}
		e.OK = ok == 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return entries, nil
}

// Sessions returns all registered session ids in the order they started.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id FROM sessions ORDER BY started_seq ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("read sessions: scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Summarize counts a session's entries by operation and outcome.
func (j *Journal) Summarize(ctx context.Context, sessionID string) (Summary, error) {
	summary := Summary{
		SessionID: sessionID,
		ByOp:      map[string]int{},
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT op, COUNT(*), SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END)
		FROM entries
		WHERE session_id = ?
		GROUP BY op
		ORDER BY op ASC
	`, sessionID)
	if err != nil {
		return summary, fmt.Errorf("summarize session: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var op string
		var total, failed int
		if err := rows.Scan(&op, &total, &failed); err != nil {
			return summary, fmt.Errorf("summarize session: scan: %w", err)
		}
		summary.ByOp[op] = total
		summary.Total += total
		summary.Failures += failed
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("summarize session: %w", err)
	}
	// Release the single connection before the next query.
	rows.Close()

	// book_count of the latest entry; zero if the session has none.
	err = j.db.QueryRowContext(ctx, `
		SELECT COALESCE(
			(SELECT book_count FROM entries WHERE session_id = ? ORDER BY seq DESC LIMIT 1),
			0)
	`, sessionID).Scan(&summary.LastCount)
	if err != nil {
		return summary, fmt.Errorf("summarize session: last count: %w", err)
	}

	return summary, nil
}
