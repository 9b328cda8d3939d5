package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentcomparer/comparer-cli/src/client/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive model browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(apiClient)
	},
}
