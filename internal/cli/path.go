package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/path"
	"github.com/roach88/woql/internal/vocab"
)

// PathResult is the JSON payload of the path command.
type PathResult struct {
	Pattern string      `json:"pattern"`
	IR      ir.IRObject `json:"ir"`
}

// NewPathCommand creates the path command.
func NewPathCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path <pattern>",
		Short: "Compile a path pattern",
		Long: `Compile a path pattern such as "friend+,<employer" and print its
JSON-LD form. Short predicate names are expanded with the configured
vocabulary.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(rootOpts, cmd, args[0])
		},
	}
}

func runPath(opts *RootOptions, cmd *cobra.Command, pattern string) error {
	f := opts.formatter(cmd)

	table := vocab.Default()
	if opts.Config != nil {
		table = opts.Config.VocabularyTable()
	}
	p, err := path.Parse(pattern, path.WithVocabulary(table))
	if err != nil {
		var serr *path.SyntaxError
		if errors.As(err, &serr) {
			return f.Fail(ExitFailure, ErrCodePathSyntax, err.Error(), map[string]any{
				"position": serr.Pos,
				"near":     serr.Near,
			})
		}
		return f.Fail(ExitFailure, ErrCodePathSyntax, err.Error(), nil)
	}

	doc := p.IR()
	canonical, err := ir.MarshalCanonical(doc)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	return f.Result(PathResult{Pattern: p.String(), IR: doc}, func(w io.Writer) {
		fmt.Fprintln(w, string(canonical))
	})
}
