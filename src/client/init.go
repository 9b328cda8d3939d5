// Package main provides CLI initialization
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/agentcomparer/comparer-cli/src/client/cache"
	"github.com/agentcomparer/comparer-cli/src/client/paths"
)

// InitCLI initializes the CLI environment:
// 1. Ensure directories exist with correct permissions
// 2. Load the config file
// 3. Initialize logging (with rotation)
// 4. Initialize the response cache
func InitCLI() error {
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}

	// The config file must be loaded before logging starts, or the
	// configured logging level and file never take effect. The --config
	// flag is parsed later during command dispatch and only applies to
	// command settings.
	loadConfig()

	if err := InitLogging(); err != nil {
		// Non-fatal - log to stderr if file fails
		fmt.Fprintf(os.Stderr, "Warning: could not initialize log file: %v\n", err)
	}

	if err := cache.Init(); err != nil {
		// Non-fatal - cache is optional
		slog.Warn("could not initialize cache", "error", err)
	}

	return nil
}

// loadConfig reads the default config file into viper. Searches the same
// location the command layer does, so both see one set of values.
func loadConfig() {
	viper.AddConfigPath(paths.ConfigDir())
	viper.SetConfigName("cli")
	viper.SetConfigType("yaml")
	viper.ReadInConfig()
}
