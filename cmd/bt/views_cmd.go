package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/ui"
	"github.com/webqa-tools/bugtrack/internal/views"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List saved views",
	Long: `List the named filters usable with 'bt list --view'.

Built-in views cover the everyday triage queries. User views live in
views.toml under ~/.config/bugtrack and override built-ins by name.`,
	Run: func(cmd *cobra.Command, args []string) {
		all, err := views.All(viewsDir())
		if err != nil {
			FatalError("%v", err)
		}

		if jsonOutput {
			outputJSON(all)
			return
		}

		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			v := all[name]
			origin := ""
			if !views.IsBuiltin(name) {
				origin = ui.RenderAccent(" (user)")
			}
			fmt.Printf("%-12s%s  %s\n", name, origin, ui.RenderMuted(v.Description))
		}
	},
}

var viewsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the given filter flags as a named view",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		v := views.View{Name: name}
		v.Description, _ = cmd.Flags().GetString("description")
		v.Status, _ = cmd.Flags().GetString("status")
		v.Module, _ = cmd.Flags().GetString("module")
		v.Severity, _ = cmd.Flags().GetString("severity")
		v.Priority, _ = cmd.Flags().GetString("priority")
		v.Assignee, _ = cmd.Flags().GetString("assignee")
		v.Search, _ = cmd.Flags().GetString("search")
		v.Limit, _ = cmd.Flags().GetInt("limit")

		// Fail on a bad enum now, not on first use.
		if _, _, err := v.Filter(); err != nil {
			exitOnError(err)
		}

		if err := views.Save(viewsDir(), name, v); err != nil {
			FatalError("%v", err)
		}
		fmt.Printf("Saved view %q\n", name)
	},
}

func init() {
	viewsSaveCmd.Flags().StringP("description", "d", "", "One-line summary shown by 'bt views'")
	viewsSaveCmd.Flags().String("status", "", "Status the view filters on")
	viewsSaveCmd.Flags().StringP("module", "m", "", "Module the view filters on")
	viewsSaveCmd.Flags().StringP("severity", "s", "", "Severity the view filters on")
	viewsSaveCmd.Flags().StringP("priority", "p", "", "Priority the view filters on")
	viewsSaveCmd.Flags().StringP("assignee", "a", "", "Assignee substring the view filters on")
	viewsSaveCmd.Flags().String("search", "", "Search term the view filters on")
	viewsSaveCmd.Flags().IntP("limit", "n", 0, "Record limit for the view (0 = no limit)")
	viewsCmd.AddCommand(viewsSaveCmd)
	rootCmd.AddCommand(viewsCmd)
}
