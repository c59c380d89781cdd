package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/types"
	"github.com/webqa-tools/bugtrack/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one bug record with its full log sequence",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bug, err := trk.GetBug(cmd.Context(), args[0])
		if err != nil {
			exitOnError(err)
		}

		if jsonOutput {
			outputJSON(bug)
			return
		}
		printBug(bug)
	},
}

func printBug(bug *types.BugRecord) {
	fmt.Printf("%s %s\n", ui.RenderAccent(bug.ID), bug.Title)
	fmt.Println(ui.RenderSeparator())
	fmt.Printf("Status:    %s\n", ui.RenderStatus(string(bug.Status)))
	fmt.Printf("Severity:  %s\n", ui.RenderSeverity(string(bug.Severity)))
	fmt.Printf("Priority:  %s\n", bug.Priority)
	fmt.Printf("Module:    %s\n", bug.Module)
	fmt.Printf("Assignee:  %s\n", bug.Assignee)
	fmt.Printf("Commit:    %s\n", bug.GitCommit)
	fmt.Printf("Created:   %s\n", bug.CreatedAt.Local().Format(time.RFC1123))
	fmt.Printf("Updated:   %s\n", bug.UpdatedAt.Local().Format(time.RFC1123))

	fmt.Printf("\n%s\n\n", ui.RenderCategory("description"))
	fmt.Print(ui.RenderMarkdown(bug.Description))

	fmt.Printf("\n%s\n\n", ui.RenderCategory(fmt.Sprintf("logs (%d)", len(bug.Logs))))
	if len(bug.Logs) == 0 {
		fmt.Println(ui.RenderMuted("  no log entries"))
		return
	}
	for _, entry := range bug.Logs {
		fmt.Printf("  %s  %-10s %s\n",
			ui.RenderMuted(entry.Timestamp.Local().Format("2006-01-02 15:04")),
			renderLogStatus(entry.Status),
			entry.Details)
	}
}

// renderLogStatus styles the free-form log tag by its common meanings;
// anything else passes through unstyled.
func renderLogStatus(status string) string {
	switch status {
	case "passed", "fixed", "resolved":
		return ui.RenderPass(status)
	case "failed", "blocked", "regression":
		return ui.RenderFail(status)
	default:
		return status
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
