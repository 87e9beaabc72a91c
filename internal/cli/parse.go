package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/dsl"
	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/schema"
	"github.com/roach88/woql/internal/woql"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "parse [source|-]",
		Short: "Compile DSL source into a query document",
		Long: `Read a query written as bare calls, the form "woql print --dialect dsl"
emits, and print its canonical JSON-LD document:

  woql parse -e 'select($X, triple($X, "rdf:type", "@schema:Person"))'

Short predicate names are expanded with the configured vocabulary.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, cmd, args, expr)
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "DSL source given inline instead of a file")
	return cmd
}

func runParse(opts *RootOptions, cmd *cobra.Command, args []string, expr string) error {
	f := opts.formatter(cmd)

	source := expr
	switch {
	case len(args) == 1 && expr != "":
		return f.Fail(ExitCommandError, ErrCodeInvalidOptions, "give either a source file or --expr, not both", nil)
	case len(args) == 1:
		data, err := readInput(cmd, args[0])
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("read %s: %v", args[0], err), nil)
		}
		f.VerboseLog("Read %d bytes from %s", len(data), args[0])
		source = string(data)
	case expr == "":
		return f.Fail(ExitCommandError, ErrCodeInvalidOptions, "parse needs a source file, - for stdin, or --expr", nil)
	}

	var qopts []woql.Option
	if opts.Config != nil {
		qopts = append(qopts, woql.WithVocabulary(opts.Config.VocabularyTable()))
	}
	q, err := dsl.Parse(source, qopts...)
	if err != nil {
		var serr *dsl.SyntaxError
		if errors.As(err, &serr) {
			return f.Fail(ExitFailure, ErrCodeDSLSyntax, err.Error(), map[string]any{
				"position": serr.Pos,
				"line":     serr.Line,
				"column":   serr.Column,
				"near":     serr.Near,
			})
		}
		return f.Fail(ExitFailure, ErrCodeBuild, err.Error(), nil)
	}

	doc := q.JSON()
	canonical, err := ir.MarshalCanonical(doc)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	if opts.Config != nil && opts.Config.Strict {
		if err := schema.Validate(canonical); err != nil {
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				return f.Fail(ExitFailure, ErrCodeSchema, err.Error(), verr.Issues)
			}
			return f.Fail(ExitFailure, ErrCodeInvalidJSON, err.Error(), nil)
		}
	}

	return f.Result(doc, func(w io.Writer) {
		fmt.Fprintln(w, string(canonical))
	})
}
