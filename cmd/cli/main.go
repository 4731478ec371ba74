// Package main is the entry point for the crewcost CLI.
package main

import (
	"os"

	"crewcost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
