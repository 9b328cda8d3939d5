package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentcomparer/comparer-cli/src/client/api"
)

var listSearch string

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List all available model combinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		models, err := apiClient.ListModels()
		if err != nil {
			return fmt.Errorf("list-models failed: %w", err)
		}

		models = filterModels(models, listSearch)
		if len(models) == 0 {
			if listSearch != "" {
				fmt.Printf("No models found matching search: %s\n", listSearch)
			} else {
				fmt.Println("No models available")
			}
			return nil
		}

		switch getOutputFormat() {
		case "json":
			return printJSON(os.Stdout, models, "  ")
		default:
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PROVIDER\tMODEL FAMILY\tMODEL NAME\n")
			for _, m := range models {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Provider(), m.ModelFamily(), m.ModelName())
			}
			w.Flush()
			fmt.Printf("\nTotal models: %d\n", len(models))
		}
		return nil
	},
}

var listProvidersCmd = &cobra.Command{
	Use:   "list-providers",
	Short: "List all available providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		providers, err := apiClient.GetProviders()
		if err != nil {
			return fmt.Errorf("list-providers failed: %w", err)
		}

		if len(providers) == 0 {
			fmt.Println("No providers available")
			return nil
		}

		switch getOutputFormat() {
		case "json":
			return printJSON(os.Stdout, providers, "  ")
		default:
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PROVIDER\tMODELS\n")
			for _, name := range sortedKeys(providers) {
				fmt.Fprintf(w, "%s\t%d\n", name, providers[name])
			}
			w.Flush()
			// Count of distinct providers, not the sum of their models
			fmt.Printf("\nTotal providers: %d\n", len(providers))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get provider statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient.GetStats()
		if err != nil {
			return fmt.Errorf("stats failed: %w", err)
		}

		switch getOutputFormat() {
		case "json":
			return printJSON(os.Stdout, stats, "  ")
		default:
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PROVIDER\tMODEL COUNT\n")
			for _, name := range sortedKeys(stats) {
				fmt.Fprintf(w, "%s\t%d\n", name, stats[name])
			}
			w.Flush()
		}
		return nil
	},
}

func init() {
	listModelsCmd.Flags().StringVar(&listSearch, "search", "", "search string to filter models")
}

// filterModels retains models whose provider, family or name contains the
// term as a case-insensitive substring. Empty term keeps everything.
func filterModels(models []api.Model, term string) []api.Model {
	if term == "" {
		return models
	}

	var filtered []api.Model
	for _, m := range models {
		if m.MatchesFilter(term) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
