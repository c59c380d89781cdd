package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts by status and severity",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := engine.Stats(cmd.Context())
		if err != nil {
			exitOnError(err)
		}

		if jsonOutput {
			outputJSON(stats)
			return
		}

		fmt.Printf("%s\n", ui.RenderCategory(fmt.Sprintf("%d bugs", stats.Total)))
		fmt.Println(ui.RenderSeparator())
		fmt.Printf("  %s %d   %s %d   %s %d   %s %d\n",
			ui.RenderStatus("open"), stats.Open,
			ui.RenderStatus("in-progress"), stats.InProgress,
			ui.RenderStatus("resolved"), stats.Resolved,
			ui.RenderStatus("closed"), stats.Closed)
		fmt.Printf("  %s %d   %s %d   %s %d   %s %d\n",
			ui.RenderSeverity("critical"), stats.Critical,
			ui.RenderSeverity("high"), stats.High,
			ui.RenderSeverity("medium"), stats.Medium,
			ui.RenderSeverity("low"), stats.Low)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
