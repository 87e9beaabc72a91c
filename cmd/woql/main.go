// Package main is the entry point for the woql CLI tool.
package main

import (
	"os"

	"github.com/roach88/woql/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
