// Package main provides the sqlcompile command.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlcompiler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
