// Package main is the entry point for the refwire CLI tool.
package main

import (
	"os"

	"github.com/coretravis/refwire-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
