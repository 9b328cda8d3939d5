// Package cmd implements the CLI commands for the Agent Comparer client
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentcomparer/comparer-cli/src/client/api"
	"github.com/agentcomparer/comparer-cli/src/client/cache"
)

// APIKeyEnv is the environment variable supplying the API credential
const APIKeyEnv = "COMPARER_API_KEY"

var (
	// Build info - set via -ldflags at build time
	ProjectName = "comparer-cli"
	Version     = "dev"
	CommitID    = "unknown"
	BuildDate   = "unknown"

	cfgFile string
	server  string
	output  string
	timeout int
	noCache bool

	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   getBinaryName(),
	Short: "CLI client for the Agent Comparer API",
	Long:  `comparer-cli is a command-line interface for the Agent Comparer API: list and search models, compare them, and calculate prices.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local-only commands run without a credential or client
		if skipsClientInit(cmd) {
			return nil
		}
		return initClient()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// skipsClientInit reports whether a command runs without the API client
func skipsClientInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "config", "version", "shell", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	if cmd.Parent() != nil {
		switch cmd.Parent().Name() {
		case "config", "shell", "completion", "help":
			return true
		}
	}
	return false
}

// initClient builds the API client from flags, config and environment.
// A missing credential is fatal here, before any request is attempted.
func initClient() error {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("%s environment variable not set", APIKeyEnv)
	}

	serverAddr := viper.GetString("server.address")
	if server != "" {
		serverAddr = server
	}
	if serverAddr == "" {
		serverAddr = api.DefaultBaseURL
	}

	timeoutVal := viper.GetInt("server.timeout")
	if timeout > 0 {
		timeoutVal = timeout
	}
	if timeoutVal == 0 {
		timeoutVal = 30
	}

	api.ProjectName = ProjectName
	api.Version = Version
	apiClient = api.NewClient(serverAddr, apiKey, timeoutVal)
	if !noCache {
		apiClient.Cache = cache.Default()
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "run against a particular server")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: table, json")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 0, "request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")

	rootCmd.AddCommand(listModelsCmd)
	rootCmd.AddCommand(listProvidersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(sampleSpecCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(tuiCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		configDir := filepath.Join(home, ".config", "agentcomparer", "comparer")
		os.MkdirAll(configDir, 0755)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("cli")
		viper.SetConfigType("yaml")
	}

	// Defaults
	viper.SetDefault("server.address", api.DefaultBaseURL)
	viper.SetDefault("server.timeout", 30)
	viper.SetDefault("output.format", "table")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", 300)
	viper.SetDefault("logging.level", "warn")

	viper.ReadInConfig()
}

func getBinaryName() string {
	return filepath.Base(os.Args[0])
}

func getOutputFormat() string {
	if output != "" {
		return output
	}
	return viper.GetString("output.format")
}

// printJSON pretty-prints a value with the given indent
func printJSON(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

// printRawJSON pretty-prints an already-encoded JSON document
func printRawJSON(w io.Writer, raw json.RawMessage, indent string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
