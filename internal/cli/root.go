package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/config"
)

// RootOptions holds global flags for all commands, plus the configuration
// and logger built from them before any command runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Catalog    string // overrides config.Catalog when set

	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the woql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "woql",
		Short: "woql - build, check and print WOQL queries",
		Long: `Work with WOQL JSON-LD query documents: canonicalize them, validate them,
pretty-print them as builder calls, read them from DSL source, compile path
patterns, emit precomposed commit-graph queries and keep named queries in a
local catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default woql.yaml over ~/.config/woql/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "named query database (overrides config)")

	cmd.AddCommand(NewFmtCommand(opts))
	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewPathCommand(opts))
	cmd.AddCommand(NewLibraryCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRmCommand(opts))

	return cmd
}

// Execute runs the root command with os.Args and returns the process exit
// code.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()

	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// Cobra's own errors (unknown command, bad flag) are not reported yet.
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return ExitCommandError
	}
	return GetExitCode(err)
}

// prepare validates global flags, builds the logger and loads config.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		bad := o.Format
		o.Format = "text"
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeInvalidOptions,
			fmt.Sprintf("invalid format %q: must be one of %v", bad, ValidFormats), nil)
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.NewLoader(o.Logger).Load(o.ConfigPath)
	if err != nil {
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeInvalidOptions, err.Error(), nil)
	}
	if o.Catalog != "" {
		cfg.Catalog = o.Catalog
	}
	o.Config = cfg
	return nil
}

// formatter returns an OutputFormatter bound to the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return NewOutputFormatter(o.Format, cmd.OutOrStdout(), cmd.ErrOrStderr(), o.Verbose)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
