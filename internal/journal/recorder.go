package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/bookshelf/internal/catalog"
)

// Recorder feeds catalog events into one journal session.
// It implements catalog.Recorder.
type Recorder struct {
	journal   *Journal
	sessionID string
	logger    *slog.Logger
}

var _ catalog.Recorder = (*Recorder)(nil)

// NewRecorder registers sessionID in j and returns a Recorder for it.
func NewRecorder(ctx context.Context, j *Journal, sessionID string, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := j.StartSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("new recorder: %w", err)
	}
	return &Recorder{journal: j, sessionID: sessionID, logger: logger}, nil
}

// SessionID returns the session this recorder writes to.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record appends ev to the session.
//
// catalog.Recorder has no error path; a failed write is logged and the
// catalog operation is unaffected.
func (r *Recorder) Record(ev catalog.Event) {
	entry, err := r.journal.Append(context.Background(), r.sessionID, ev)
	if err != nil {
		r.logger.Error("journal write failed",
			"session", r.sessionID,
			"op", ev.Op,
			"error", err,
		)
		return
	}
	r.logger.Debug("journal entry written",
		"session", r.sessionID,
		"seq", entry.Seq,
		"op", entry.Op,
		"code", entry.Code,
	)
}
