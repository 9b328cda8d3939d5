package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentcomparer/comparer-cli/src/client/api"
)

// capabilityFlags are the tri-state boolean filters: --x sends true,
// --no-x sends false, neither leaves the filter unset
var capabilityFlags = []struct {
	name string
	help string
}{
	{"tools", "filter by tool availability"},
	{"multilingual", "filter by multilingual support"},
	{"audio", "filter by audio support"},
	{"vision", "filter by vision support"},
	{"reasoning", "filter by reasoning capabilities"},
	{"fine-tuning", "filter by fine-tuning support"},
	{"streaming", "filter by realtime streaming support"},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for models with specific criteria",
	Long: `Search for models with specific criteria.

Boolean filters come in pairs: --vision requires the capability, --no-vision
excludes it, and leaving both off skips the filter. If both are given the
negative form wins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria := buildSearchCriteria(cmd.Flags())

		results, err := apiClient.SearchModels(criteria)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		fmt.Println("Search Results:")
		return printRawJSON(os.Stdout, results, "  ")
	},
}

func init() {
	registerSearchFlags(searchCmd.Flags())
}

func registerSearchFlags(flags *pflag.FlagSet) {
	flags.String("provider", "", "filter by provider name")
	flags.Int("min-context", 0, "minimum context window size")
	flags.Int("max-context", 0, "maximum context window size")
	flags.Int("min-output-tokens", 0, "minimum output tokens")
	flags.Int("max-output-tokens", 0, "maximum output tokens")

	for _, cf := range capabilityFlags {
		flags.Bool(cf.name, false, cf.help)
		flags.Bool("no-"+cf.name, false, cf.help+" (exclude)")
	}
}

// buildSearchCriteria maps the command flags onto the request criteria,
// leaving untouched flags nil so they serialize as null filters
func buildSearchCriteria(flags *pflag.FlagSet) api.SearchCriteria {
	return api.SearchCriteria{
		Provider:        stringFlag(flags, "provider"),
		MinContext:      intFlag(flags, "min-context"),
		MaxContext:      intFlag(flags, "max-context"),
		MinOutputTokens: intFlag(flags, "min-output-tokens"),
		MaxOutputTokens: intFlag(flags, "max-output-tokens"),
		Tools:           triStateFlag(flags, "tools"),
		Multilingual:    triStateFlag(flags, "multilingual"),
		Audio:           triStateFlag(flags, "audio"),
		Vision:          triStateFlag(flags, "vision"),
		Reasoning:       triStateFlag(flags, "reasoning"),
		FineTuning:      triStateFlag(flags, "fine-tuning"),
		Streaming:       triStateFlag(flags, "streaming"),
	}
}

func stringFlag(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func intFlag(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

func triStateFlag(flags *pflag.FlagSet, name string) *bool {
	if flags.Changed("no-" + name) {
		v := false
		return &v
	}
	if flags.Changed(name) {
		v := true
		return &v
	}
	return nil
}
