package cli

import (
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/bookshelf/internal/config"
	"github.com/roach88/bookshelf/internal/journal"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	LogLevel   string
	NoSeed     bool
	Trace      bool

	// Config is resolved from flags, environment and config file before
	// any command runs.
	Config *config.Config

	// SessionIDs names journal sessions. Tests replace it with a fixed generator.
	SessionIDs journal.SessionIDGenerator
}

// NewRootCommand creates the root command for the bookshelf CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{SessionIDs: journal.UUIDv7Generator{}})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "bookshelf - a small library catalog",
		Long: `Manage an in-memory library catalog through a text menu.

Books have a title and a genre. Titles are unique regardless of case, and
genres must be one of the allowed set. Nothing is saved between runs.

Running bookshelf without a subcommand starts the menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(opts, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: bookshelf.yaml in . or ~/.config/bookshelf)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.NoSeed, "no-seed", false, "start with an empty catalog")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", false, "print the session journal on exit")

	// Add subcommands
	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewGenresCommand(opts))

	return cmd
}

// loadConfig resolves opts.Config. Only flags the user set override the
// environment and config file.
func loadConfig(opts *RootOptions, cmd *cobra.Command) error {
	loadOpts := config.LoadOptions{
		ConfigFile: opts.ConfigFile,
		Flags:      cmd.Flags(),
	}
	if opts.ConfigFile == "" {
		loadOpts.SearchPaths = config.DefaultSearchPaths()
	}

	cfg, err := config.Load(loadOpts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	opts.Config = cfg
	return nil
}

// Execute runs the CLI with the given arguments and streams, reports any
// error in the configured format on stderr, and returns the exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &RootOptions{SessionIDs: journal.UUIDv7Generator{}}
	return execute(opts, args, stdin, stdout, stderr)
}

func execute(opts *RootOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	format := opts.Format
	if opts.Config != nil {
		format = opts.Config.Format
	}
	if !slices.Contains(config.ValidFormats, format) {
		format = "text"
	}
	formatter := &OutputFormatter{Format: format, Writer: stderr, Verbose: opts.Verbose}
	_ = formatter.Error(ErrorCode(err), err.Error(), nil)
	return GetExitCode(err)
}
