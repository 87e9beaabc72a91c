package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/schema"
	"github.com/roach88/woql/internal/woql"
)

// readInput reads a file, or stdin when arg is "-".
func readInput(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(arg)
}

// loadDocument reads arg and decodes it as a query document. Failures are
// reported through f. With strict config the document must also pass
// schema validation.
func (o *RootOptions) loadDocument(cmd *cobra.Command, f *OutputFormatter, arg string) ([]byte, *woql.Query, error) {
	data, err := readInput(cmd, arg)
	if err != nil {
		return nil, nil, f.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("read %s: %v", arg, err), nil)
	}
	f.VerboseLog("Read %d bytes from %s", len(data), arg)

	var opts []woql.Option
	if o.Config != nil {
		opts = append(opts, woql.WithVocabulary(o.Config.VocabularyTable()))
	}
	q, err := woql.Parse(data, opts...)
	if err != nil {
		return nil, nil, f.Fail(ExitFailure, ErrCodeInvalidJSON, fmt.Sprintf("decode %s: %v", arg, err), nil)
	}

	if o.Config != nil && o.Config.Strict {
		if err := schema.Validate(data); err != nil {
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				return nil, nil, f.Fail(ExitFailure, ErrCodeSchema, err.Error(), verr.Issues)
			}
			return nil, nil, f.Fail(ExitFailure, ErrCodeInvalidJSON, err.Error(), nil)
		}
	}
	return data, q, nil
}
