package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/schema"
	"github.com/roach88/woql/internal/woql"
)

// CheckResult holds the outcome of the check command.
type CheckResult struct {
	Valid          bool           `json:"valid"`
	ContainsUpdate bool           `json:"contains_update"`
	Issues         []schema.Issue `json:"issues,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <doc|->",
		Short: "Validate a query document",
		Long: `Validate a query document against the WOQL schema and report whether it
writes to the database. Writing queries need a commit message when sent.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, args[0])
		},
	}
}

func runCheck(opts *RootOptions, cmd *cobra.Command, arg string) error {
	f := opts.formatter(cmd)
	data, err := readInput(cmd, arg)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("read %s: %v", arg, err), nil)
	}

	result := CheckResult{Valid: true}
	if err := schema.Validate(data); err != nil {
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			return f.Fail(ExitFailure, ErrCodeInvalidJSON, err.Error(), nil)
		}
		result.Valid = false
		result.Issues = verr.Issues
	}

	if q, err := woql.Parse(data); err == nil {
		result.ContainsUpdate = q.ContainsUpdate()
	}

	if !result.Valid {
		return f.Fail(ExitFailure, ErrCodeSchema,
			fmt.Sprintf("%d schema issue(s) in %s", len(result.Issues), arg), result)
	}

	p := newPainter(f.Writer)
	return f.Result(result, func(w io.Writer) {
		fmt.Fprintln(w, p.bold("✓ Document valid"))
		if result.ContainsUpdate {
			fmt.Fprintln(w, "  writes data: commit message required")
		} else {
			fmt.Fprintln(w, p.muted("  read-only"))
		}
	})
}
