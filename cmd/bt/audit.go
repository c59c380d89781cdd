package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/ui"
)

var auditCmd = &cobra.Command{
	Use:   "audit [bug-id]",
	Short: "Show the audit trail",
	Long: `Show audit events, newest first: who did what to which bug, when.

With a bug id, only that bug's events are shown. The trail is raw and
append-only; there is no richer query than this.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bugID := ""
		if len(args) > 0 {
			bugID = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		events, err := store.ListAuditEvents(cmd.Context(), bugID, limit)
		if err != nil {
			exitOnError(err)
		}

		if jsonOutput {
			outputJSON(events)
			return
		}
		if len(events) == 0 {
			fmt.Println("No audit events.")
			return
		}
		for _, e := range events {
			fmt.Printf("%s  %-13s %-12s %s  %s\n",
				ui.RenderMuted(e.Timestamp.Local().Format("2006-01-02 15:04:05")),
				e.Action,
				e.User,
				ui.RenderAccent(e.BugID),
				e.Details)
		}
	},
}

func init() {
	auditCmd.Flags().IntP("limit", "n", 50, "Maximum number of events (0 = no limit)")
	rootCmd.AddCommand(auditCmd)
}
