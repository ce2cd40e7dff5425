// Package main provides the loanlens CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/loanlens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
