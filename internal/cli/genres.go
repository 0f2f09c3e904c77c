package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/bookshelf/internal/catalog"
	"github.com/roach88/bookshelf/internal/config"
)

// GenresResult is the JSON payload of the genres command.
type GenresResult struct {
	Genres []string `json:"genres"`
}

// NewGenresCommand creates the genres command.
func NewGenresCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List the allowed genres",
		Long: `List the genres a book may have, in alphabetical order.

Examples:
  bookshelf genres
  bookshelf genres --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenres(rootOpts, cmd)
		},
	}

	return cmd
}

func runGenres(opts *RootOptions, cmd *cobra.Command) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	genres := catalog.AllowedGenres()
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = string(g)
	}

	formatter := &OutputFormatter{
		Format: cfg.Format,
		Writer: cmd.OutOrStdout(),
	}
	if cfg.Format == "json" {
		return formatter.Success(GenresResult{Genres: names})
	}
	for _, name := range names {
		if err := formatter.Success(name); err != nil {
			return err
		}
	}
	return nil
}
