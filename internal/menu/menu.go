// Package menu runs the interactive text menu over a catalog.
//
// The menu is a plain line protocol: every prompt reads one line from the
// input, and every catalog message is relayed to the output unchanged. This
// keeps sessions scriptable through a pipe.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/bookshelf/internal/catalog"
)

// Fixed menu text.
const (
	Welcome       = "Welcome to the Library Management System!"
	Goodbye       = "Exiting the Library Management System. Goodbye!"
	InvalidChoice = "Invalid choice. Please enter a number between 1 and 4."

	PromptChoice      = "Enter your choice (1-4): "
	PromptTitle       = "Enter the book title: "
	PromptGenre       = "Enter the book genre: "
	PromptDeleteTitle = "Enter the title of the book to delete: "
)

// Menu choices.
const (
	ChoiceAdd    = "1"
	ChoiceView   = "2"
	ChoiceDelete = "3"
	ChoiceExit   = "4"
)

var menuLines = []string{
	"\n--- Library Menu ---",
	"1. Add a Book",
	"2. View All Books",
	"3. Delete a Book",
	"4. Exit",
	"--------------------",
}

// Session is one run of the menu loop.
type Session struct {
	catalog *catalog.Catalog
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// NewSession creates a session reading from in and writing to out.
func NewSession(c *catalog.Catalog, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		catalog: c,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run shows the menu until the user exits, the input ends, or ctx is done.
//
// End of input is treated like choosing Exit. Returns ctx.Err() if the
// context was cancelled, or the input error if reading failed.
func (s *Session) Run(ctx context.Context) error {
	s.println(Welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, ok := s.prompt(PromptChoice)
		if !ok {
			return s.finish()
		}

		switch strings.TrimSpace(choice) {
		case ChoiceAdd:
			if !s.add() {
				return s.finish()
			}
		case ChoiceView:
			s.view()
		case ChoiceDelete:
			if !s.delete() {
				return s.finish()
			}
		case ChoiceExit:
			s.println(Goodbye)
			return nil
		default:
			s.logger.Debug("invalid menu choice", "choice", choice)
			s.println(InvalidChoice)
		}
	}
}

// add runs the add dialog. Returns false if input ended mid-dialog.
func (s *Session) add() bool {
	title, ok := s.prompt(PromptTitle)
	if !ok {
		return false
	}
	s.println("Allowed genres are: " + catalog.AllowedGenreList())
	genre, ok := s.prompt(PromptGenre)
	if !ok {
		return false
	}
	s.println(s.catalog.Add(title, genre).Message)
	return true
}

func (s *Session) view() {
	for line := range s.catalog.View() {
		s.println(line)
	}
}

// delete runs the delete dialog. Returns false if input ended mid-dialog.
func (s *Session) delete() bool {
	title, ok := s.prompt(PromptDeleteTitle)
	if !ok {
		return false
	}
	s.println(s.catalog.Delete(title).Message)
	return true
}

// finish ends the session after the input ran out.
func (s *Session) finish() error {
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	s.println("")
	s.println(Goodbye)
	return nil
}

// prompt writes p and reads one line. The line is returned without its
// trailing newline (or \r\n); ok is false at end of input.
func (s *Session) prompt(p string) (string, bool) {
	fmt.Fprint(s.out, p)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSuffix(s.in.Text(), "\r"), true
}

func (s *Session) printMenu() {
	for _, line := range menuLines {
		s.println(line)
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
