package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/tracker"
)

var createCmd = &cobra.Command{
	Use:     "create [title]",
	Aliases: []string{"new"},
	Short:   "Create a new bug record",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		titleFlag, _ := cmd.Flags().GetString("title")
		var title string
		switch {
		case len(args) > 0 && titleFlag != "" && args[0] != titleFlag:
			FatalError("cannot specify different titles as both positional argument and --title flag\n  Positional: %q\n  --title:    %q", args[0], titleFlag)
		case len(args) > 0:
			title = args[0]
		case titleFlag != "":
			title = titleFlag
		default:
			FatalError("title required")
		}

		if strings.HasPrefix(strings.ToLower(title), "test") {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Fprintf(os.Stderr, "%s Creating a bug with a 'Test' prefix in the production database.\n", yellow("⚠"))
			fmt.Fprintf(os.Stderr, "  For experiments, consider: bt --db bugtrack_scratch create %q\n", title)
		}

		description, _ := cmd.Flags().GetString("description")
		module, _ := cmd.Flags().GetString("module")
		severity, _ := cmd.Flags().GetString("severity")
		priority, _ := cmd.Flags().GetString("priority")
		assignee, _ := cmd.Flags().GetString("assignee")
		commit, _ := cmd.Flags().GetString("commit")

		// The commit reference is a CLI convenience: the core stores
		// whatever opaque string it is handed, N/A when there is none.
		if !cmd.Flags().Changed("commit") {
			commit = currentGitCommit()
		}

		id, err := trk.CreateBug(cmd.Context(), tracker.CreateBugInput{
			Title:       title,
			Description: description,
			Module:      module,
			Severity:    severity,
			Priority:    priority,
			Assignee:    assignee,
			GitCommit:   commit,
		})
		if err != nil {
			exitOnError(err)
		}

		if jsonOutput {
			outputJSON(map[string]string{"id": id})
			return
		}
		fmt.Printf("Created bug %s\n", id)
	},
}

// currentGitCommit returns HEAD of the working directory's repository,
// or "" when not in a repository (the core then stores the N/A sentinel).
func currentGitCommit() string {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func init() {
	createCmd.Flags().String("title", "", "Bug title (alternative to positional argument)")
	createCmd.Flags().StringP("description", "d", "", "What is broken and how to reproduce it (required)")
	createCmd.Flags().StringP("module", "m", "", "Module or subsystem the bug lives in (required)")
	createCmd.Flags().StringP("severity", "s", "", "Severity: low, medium, high, critical (required)")
	createCmd.Flags().StringP("priority", "p", "", "Priority: P0-P3 (optional, accepts bare digits)")
	createCmd.Flags().StringP("assignee", "a", "", "Assignee (default: Unassigned)")
	createCmd.Flags().String("commit", "", "Git commit reference (default: git rev-parse HEAD)")
	rootCmd.AddCommand(createCmd)
}
