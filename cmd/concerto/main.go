// Package main provides the concerto CLI.
package main

import (
	"os"

	"github.com/2lambda123/accordproject-concerto/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
