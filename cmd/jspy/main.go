// Package main provides the entry point for the jspy CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/jspy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
