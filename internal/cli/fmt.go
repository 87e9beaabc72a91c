package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/ir"
)

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <doc|->",
		Short: "Canonicalize a query document",
		Long: `Collapse trivial conjunctions, drop empty sub-queries and print the
document as canonical JSON (sorted keys, NFC strings).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(rootOpts, cmd, args[0])
		},
	}
}

func runFmt(opts *RootOptions, cmd *cobra.Command, arg string) error {
	f := opts.formatter(cmd)
	_, q, err := opts.loadDocument(cmd, f, arg)
	if err != nil {
		return err
	}

	doc := q.JSON()
	canonical, err := ir.MarshalCanonical(doc)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidJSON, err.Error(), nil)
	}
	return f.Result(doc, func(w io.Writer) {
		fmt.Fprintln(w, string(canonical))
	})
}
