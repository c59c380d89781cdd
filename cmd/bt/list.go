package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/query"
	"github.com/webqa-tools/bugtrack/internal/types"
	"github.com/webqa-tools/bugtrack/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bugs, newest first",
	Long: `List bug records matching the given filters, newest first.

Status, module, and severity are matched by the store; priority,
assignee, and --search are applied in memory on top. All active filters
must match (AND).`,
	Run: func(cmd *cobra.Command, args []string) {
		filter, preds, err := buildListQuery(cmd)
		if err != nil {
			exitOnError(err)
		}

		bugs, err := engine.List(cmd.Context(), filter)
		if err != nil {
			exitOnError(err)
		}
		bugs = query.Apply(bugs, preds...)

		if jsonOutput {
			outputJSON(bugs)
			return
		}
		printBugList(bugs)
	},
}

func printBugList(bugs []*types.BugRecord) {
	if len(bugs) == 0 {
		fmt.Println("No bugs found.")
		return
	}
	for _, b := range bugs {
		// Pad before styling: ANSI escapes would defeat %-*s widths.
		fmt.Printf("%s  %s %s %-4s %-14s %s\n",
			ui.RenderMuted(b.ID),
			ui.RenderStatus(fmt.Sprintf("%-11s", b.Status)),
			ui.RenderSeverity(fmt.Sprintf("%-8s", b.Severity)),
			b.Priority,
			ui.TruncateSimple(b.Module, 14),
			ui.TruncateSimple(b.Title, 60))
	}
	fmt.Printf("\n%d bug(s)\n", len(bugs))
}

func init() {
	registerFilterFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}
