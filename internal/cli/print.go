package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/printer"
)

// PrintResult is the JSON payload of the print command.
type PrintResult struct {
	Dialect string `json:"dialect"`
	Source  string `json:"source"`
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	var d printer.Dialect

	cmd := &cobra.Command{
		Use:   "print <doc|->",
		Short: "Pretty-print a query document as builder calls",
		Long: `Render a query document as JavaScript or Python builder calls, or as
DSL source that "woql parse" reads back, one sub-query per line.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(rootOpts, cmd, args[0], rootOpts.dialect(cmd, d))
		},
	}

	addDialectFlag(cmd.Flags(), &d)
	return cmd
}

func runPrint(opts *RootOptions, cmd *cobra.Command, arg string, d printer.Dialect) error {
	f := opts.formatter(cmd)
	_, q, err := opts.loadDocument(cmd, f, arg)
	if err != nil {
		return err
	}

	source := printer.Print(q.JSON(), d)
	return f.Result(PrintResult{Dialect: d.String(), Source: source}, func(w io.Writer) {
		fmt.Fprintln(w, source)
	})
}
