package main

import (
	"fmt"
	"os"

	"github.com/agentcomparer/comparer-cli/src/client/cmd"
)

func main() {
	// Prepare directories, logging and cache before any command runs
	if err := InitCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
