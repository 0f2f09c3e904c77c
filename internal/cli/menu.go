package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/bookshelf/internal/catalog"
	"github.com/roach88/bookshelf/internal/config"
	"github.com/roach88/bookshelf/internal/journal"
	"github.com/roach88/bookshelf/internal/menu"
)

// SessionTrace is the --trace output of one menu session.
type SessionTrace struct {
	SessionID string          `json:"session_id"`
	Entries   []journal.Entry `json:"entries"`
	Summary   journal.Summary `json:"summary"`
}

// NewMenuCommand creates the menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Long: `Start the interactive library menu on stdin/stdout.

The catalog starts with three default books unless --no-seed is given.
Every operation is journaled for the session; --trace prints the
journal when the menu exits.

Examples:
  bookshelf menu
  bookshelf menu --no-seed
  printf '2\n4\n' | bookshelf menu --trace --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(rootOpts, cmd)
		},
	}

	return cmd
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	formatter := &OutputFormatter{
		Format:    cfg.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   cfg.Verbose,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	j, err := journal.Open()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			logger.Error("error closing journal", "error", closeErr)
		}
	}()

	gen := opts.SessionIDs
	if gen == nil {
		gen = journal.UUIDv7Generator{}
	}
	rec, err := journal.NewRecorder(ctx, j, gen.Generate(), logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start journal session", err)
	}
	formatter.TraceID = rec.SessionID()
	formatter.VerboseLog("journal session %s", rec.SessionID())

	c := catalog.New(catalog.WithLogger(logger), catalog.WithRecorder(rec))
	if cfg.SeedDefaults {
		if errs := c.Initialize(catalog.DefaultSeeds()); len(errs) > 0 {
			logger.Warn("some default books were skipped", "count", len(errs))
		}
	}

	session := menu.NewSession(c, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if err := session.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "menu session ended with an error", err)
	}

	if cfg.Trace {
		return printTrace(ctx, formatter, j, rec.SessionID())
	}
	return nil
}

// newLogger builds the stderr text logger for a command run.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	return slog.New(handler)
}

func printTrace(ctx context.Context, formatter *OutputFormatter, j *journal.Journal, sessionID string) error {
	entries, err := j.Entries(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	summary, err := j.Summarize(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to summarize journal", err)
	}

	trace := SessionTrace{SessionID: sessionID, Entries: entries, Summary: summary}

	if formatter.Format == "json" {
		return formatter.Success(trace)
	}
	return outputTraceText(formatter.Writer, trace)
}

func outputTraceText(w io.Writer, trace SessionTrace) error {
	fmt.Fprintf(w, "\n--- Session Journal (%s) ---\n", trace.SessionID)
	for _, e := range trace.Entries {
		status := "ok"
		if !e.OK {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%4d  %-6s %-4s %-15s %q\n", e.Seq, e.Op, status, e.Code, e.Title)
	}
	_, err := fmt.Fprintf(w, "%d operation(s), %d failed, %d book(s) at exit\n",
		trace.Summary.Total, trace.Summary.Failures, trace.Summary.LastCount)
	return err
}
