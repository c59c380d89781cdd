package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/types"
)

var updateStatusCmd = &cobra.Command{
	Use:     "update-status <id> <status>",
	Aliases: []string{"status"},
	Short:   "Move a bug to another status",
	Long: `Set a bug record's status to open, in-progress, resolved, or closed.

There is no transition graph: any status may move to any other,
backward included. Reopening a closed bug is update-status <id> open.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		status, err := types.ParseStatus(args[1])
		if err != nil {
			exitOnError(err)
		}

		if err := trk.TransitionStatus(cmd.Context(), id, status); err != nil {
			exitOnError(err)
		}

		if jsonOutput {
			outputJSON(map[string]string{"id": id, "status": string(status)})
			return
		}
		fmt.Printf("Bug %s is now %s\n", id, status)
	},
}

func init() {
	rootCmd.AddCommand(updateStatusCmd)
}
