package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addLogCmd = &cobra.Command{
	Use:     "add-log <id> <status> <details...>",
	Aliases: []string{"log"},
	Short:   "Append an activity or test-result entry to a bug's log",
	Long: `Append one timestamped entry to a bug record's log sequence.

The status is a free-form short tag, stored lower-cased: a test outcome
(passed, failed) or an activity type (comment, blocked, triaged). Log
entries are append-only; nothing ever edits or removes one.`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		status := args[1]
		details := strings.Join(args[2:], " ")

		if err := trk.AppendLog(cmd.Context(), id, status, details); err != nil {
			exitOnError(err)
		}

		if jsonOutput {
			outputJSON(map[string]string{"id": id, "status": strings.ToLower(status)})
			return
		}
		fmt.Printf("Logged %q on %s\n", strings.ToLower(strings.TrimSpace(status)), id)
	},
}

func init() {
	rootCmd.AddCommand(addLogCmd)
}
