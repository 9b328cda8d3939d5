package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <spec-file>",
	Short: "Compare models using a spec from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := readSpecFile(args[0])
		if err != nil {
			return err
		}

		results, err := apiClient.CompareModels(spec)
		if err != nil {
			return fmt.Errorf("compare failed: %w", err)
		}
		return printRawJSON(os.Stdout, results, "  ")
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate <spec-file>",
	Short: "Calculate prices using input from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := readSpecFile(args[0])
		if err != nil {
			return err
		}

		results, err := apiClient.CalculatePrice(spec)
		if err != nil {
			return fmt.Errorf("calculate failed: %w", err)
		}
		return printRawJSON(os.Stdout, results, "  ")
	},
}

// readSpecFile loads and parses a caller-authored JSON spec file.
// Errors here are local and never reach the network.
func readSpecFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var spec any
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", path, err)
	}
	return spec, nil
}
