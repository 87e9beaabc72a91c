package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/woql/internal/printer"
)

// dialectValue is a pflag.Value that accepts only known dialects, so bad
// values fail at flag parsing.
type dialectValue struct {
	d *printer.Dialect
}

var _ pflag.Value = dialectValue{}

func (v dialectValue) String() string {
	if v.d == nil {
		return printer.JS.String()
	}
	return v.d.String()
}

func (v dialectValue) Set(s string) error {
	d, err := printer.ParseDialect(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v dialectValue) Type() string {
	return "dialect"
}

func addDialectFlag(fs *pflag.FlagSet, d *printer.Dialect) {
	fs.Var(dialectValue{d: d}, "dialect", "pretty-print dialect (js|python|dsl); defaults to the config value")
}

// dialect returns the flag value when given, the configured one otherwise.
func (o *RootOptions) dialect(cmd *cobra.Command, flagValue printer.Dialect) printer.Dialect {
	if cmd.Flags().Changed("dialect") || o.Config == nil {
		return flagValue
	}
	return o.Config.PrinterDialect()
}
