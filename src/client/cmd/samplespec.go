package cmd

import (
	"fmt"
	"maps"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentcomparer/comparer-cli/src/client/api"
)

// sampleRand drives model selection for sample-spec; tests swap in a
// seeded source for deterministic picks
var sampleRand = rand.New(rand.NewSource(time.Now().UnixNano()))

var sampleSpecCmd = &cobra.Command{
	Use:       "sample-spec {compare|calculate}",
	Short:     "Generate a sample input JSON for the compare or calculate commands",
	Long:      `Generate a ready-to-edit sample spec file for compare or calculate, built from two randomly picked models.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"compare", "calculate"},
	RunE: func(cmd *cobra.Command, args []string) error {
		models, err := apiClient.ListModels()
		if err != nil {
			return fmt.Errorf("sample-spec failed: %w", err)
		}

		spec, err := buildSampleSpec(args[0], models, sampleRand)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, spec, "    ")
	},
}

// buildSampleSpec assembles the example request body around two distinct
// models picked uniformly without replacement
func buildSampleSpec(target string, models []api.Model, r *rand.Rand) (map[string]any, error) {
	two, err := sampleTwo(models, r)
	if err != nil {
		return nil, err
	}

	switch target {
	case "compare":
		return map[string]any{
			"models":        two,
			"input_tokens":  1000,
			"output_tokens": 500,
			"metadata": api.Metadata{
				AgentID:   "cli-sample",
				TaskID:    "comparison-test",
				MessageID: "msg123",
				ThreadID:  "thread456",
			},
		}, nil
	case "calculate":
		// Token counts are injected into the records themselves; clone so
		// the caller's slice stays untouched
		first := maps.Clone(two[0])
		first["input_tokens"] = 1000
		first["output_tokens"] = 500

		second := maps.Clone(two[1])
		second["input_tokens"] = 2000
		second["output_tokens"] = 1000

		return map[string]any{
			"calculations": []api.Model{first, second},
			"metadata": api.Metadata{
				AgentID:   "cli-sample",
				TaskID:    "calculation-test",
				MessageID: "msg789",
				ThreadID:  "thread012",
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown sample-spec target: %s", target)
	}
}

// sampleTwo picks 2 distinct models uniformly without replacement
func sampleTwo(models []api.Model, r *rand.Rand) ([]api.Model, error) {
	if len(models) < 2 {
		return nil, fmt.Errorf("need at least 2 models to build a sample spec, server returned %d", len(models))
	}
	perm := r.Perm(len(models))
	return []api.Model{models[perm[0]], models[perm[1]]}, nil
}
