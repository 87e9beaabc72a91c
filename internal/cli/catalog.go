package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/woql/internal/catalog"
	"github.com/roach88/woql/internal/printer"
)

// openCatalog opens the configured catalog, reporting failures through f.
func (o *RootOptions) openCatalog(f *OutputFormatter) (*catalog.Catalog, error) {
	path := "woql.db"
	if o.Config != nil {
		path = o.Config.Catalog
	}
	f.VerboseLog("Opening catalog %s", path)

	c, err := catalog.Open(path, catalog.WithLogger(o.Logger))
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}
	return c, nil
}

func catalogFailure(f *OutputFormatter, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
	}
	if errors.Is(err, catalog.ErrInvalidName) {
		return f.Fail(ExitCommandError, ErrCodeInvalidOptions, err.Error(), nil)
	}
	return f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "save <name> <doc|->",
		Short: "Save a query document under a name",
		Long: `Save a canonicalized query document in the catalog. Saving the same
content again keeps the revision; new content bumps it.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(rootOpts, cmd, args[0], args[1], params)
		},
	}
	cmd.Flags().StringSliceVar(&params, "param", nil, "variable the caller must bind (repeatable)")
	return cmd
}

func runSave(opts *RootOptions, cmd *cobra.Command, name, arg string, params []string) error {
	f := opts.formatter(cmd)
	_, q, err := opts.loadDocument(cmd, f, arg)
	if err != nil {
		return err
	}

	c, err := opts.openCatalog(f)
	if err != nil {
		return err
	}
	defer c.Close()

	entry, err := c.Save(contextOf(cmd), name, q.JSON(), params)
	if err != nil {
		return catalogFailure(f, err)
	}

	p := newPainter(f.Writer)
	return f.Result(entry, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Saved %s %s\n", p.accent(entry.Name), p.muted(fmt.Sprintf("(revision %d)", entry.Revision)))
	})
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		pretty bool
		d      printer.Dialect
	)

	cmd := &cobra.Command{
		Use:           "show <name>",
		Short:         "Print a saved query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			c, err := rootOpts.openCatalog(f)
			if err != nil {
				return err
			}
			defer c.Close()

			entry, err := c.Get(contextOf(cmd), args[0])
			if err != nil {
				return catalogFailure(f, err)
			}
			return writeDocument(f, entry.Document, pretty, rootOpts.dialect(cmd, d))
		},
	}
	cmd.Flags().BoolVarP(&pretty, "print", "p", false, "pretty-print instead of JSON")
	addDialectFlag(cmd.Flags(), &d)
	return cmd
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	c, err := opts.openCatalog(f)
	if err != nil {
		return err
	}
	defer c.Close()

	entries, err := c.List(contextOf(cmd))
	if err != nil {
		return catalogFailure(f, err)
	}

	p := newPainter(f.Writer)
	return f.Result(entries, func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, p.muted("no saved queries"))
			return
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				p.accent(e.Name),
				p.muted(fmt.Sprintf("rev %d", e.Revision)),
				p.muted(shortID(e.ContentID)))
		}
	})
}

// NewRmCommand creates the rm command.
func NewRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <name>",
		Short:         "Delete a saved query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			c, err := rootOpts.openCatalog(f)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Delete(contextOf(cmd), args[0]); err != nil {
				return catalogFailure(f, err)
			}
			name := catalog.Slug(args[0])
			return f.Result(map[string]string{"deleted": name}, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Deleted %s\n", name)
			})
		},
	}
}

// contextOf returns the command context, which is nil when a command is
// executed without one.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
