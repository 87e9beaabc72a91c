package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/library"
	"github.com/roach88/woql/internal/printer"
	"github.com/roach88/woql/internal/woql"
)

// libraryOptions are shared by the library subcommands.
type libraryOptions struct {
	pretty  bool
	dialect printer.Dialect
}

// NewLibraryCommand creates the library command and its subcommands.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	libOpts := &libraryOptions{}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Emit precomposed commit-graph queries",
		Long: `Emit ready-made queries over the _commits collection: branch listings,
commit logs and single-commit lookups.`,
	}
	cmd.PersistentFlags().BoolVarP(&libOpts.pretty, "print", "p", false, "pretty-print instead of JSON")
	addDialectFlag(cmd.PersistentFlags(), &libOpts.dialect)

	cmd.AddCommand(&cobra.Command{
		Use:           "branches",
		Short:         "List branches and their heads",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitQuery(rootOpts, libOpts, cmd, library.Branches())
		},
	})

	var (
		commitOpts library.CommitOptions
		before     string
	)
	commits := &cobra.Command{
		Use:           "commits",
		Short:         "Walk a branch history, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if before != "" {
				t, err := time.Parse(time.RFC3339, before)
				if err != nil {
					return rootOpts.formatter(cmd).Fail(ExitCommandError, ErrCodeInvalidOptions,
						fmt.Sprintf("--before must be an RFC 3339 time: %v", err), nil)
				}
				commitOpts.Before = t
			}
			return emitQuery(rootOpts, libOpts, cmd, library.Commits(commitOpts))
		},
	}
	commits.Flags().StringVar(&commitOpts.Branch, "branch", library.DefaultBranch, "branch name")
	commits.Flags().IntVar(&commitOpts.Limit, "limit", 0, "maximum commits (0 for all)")
	commits.Flags().IntVar(&commitOpts.Start, "start", 0, "commits to skip")
	commits.Flags().StringVar(&before, "before", "", "only commits before this RFC 3339 time")
	cmd.AddCommand(commits)

	var count int
	previous := &cobra.Command{
		Use:           "previous-commits <commit-id>",
		Short:         "List ancestors of a commit",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitQuery(rootOpts, libOpts, cmd, library.PreviousCommits(args[0], count))
		},
	}
	previous.Flags().IntVar(&count, "count", 1, "number of ancestors (0 for all)")
	cmd.AddCommand(previous)

	var branch string
	first := &cobra.Command{
		Use:           "first-commit",
		Short:         "Find the root commit of a branch",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitQuery(rootOpts, libOpts, cmd, library.FirstCommit(branch))
		},
	}
	first.Flags().StringVar(&branch, "branch", library.DefaultBranch, "branch name")
	cmd.AddCommand(first)

	cmd.AddCommand(&cobra.Command{
		Use:           "commit <commit-id>",
		Short:         "Look up one commit",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitQuery(rootOpts, libOpts, cmd, library.CommitByID(args[0]))
		},
	})

	return cmd
}

func emitQuery(opts *RootOptions, libOpts *libraryOptions, cmd *cobra.Command, q *woql.Query) error {
	f := opts.formatter(cmd)
	doc, err := q.Build()
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeBuild, err.Error(), nil)
	}
	return writeDocument(f, doc, libOpts.pretty, opts.dialect(cmd, libOpts.dialect))
}

// writeDocument outputs doc as canonical JSON, or as builder calls when
// pretty is set. JSON output always carries the document itself.
func writeDocument(f *OutputFormatter, doc ir.IRObject, pretty bool, d printer.Dialect) error {
	canonical, err := ir.MarshalCanonical(doc)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidJSON, err.Error(), nil)
	}
	return f.Result(doc, func(w io.Writer) {
		if pretty {
			fmt.Fprintln(w, printer.Print(doc, d))
			return
		}
		fmt.Fprintln(w, string(canonical))
	})
}
