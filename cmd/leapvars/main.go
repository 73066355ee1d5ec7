// Package main provides the leapvars CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapvars/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
