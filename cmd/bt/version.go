package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of bt (overridden by ldflags at build time)
	Version = "0.3.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
	// Commit is the git revision the binary was built from (optional ldflag)
	Commit = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		commit := Commit
		if commit == "" {
			commit = currentGitCommit()
		}

		if jsonOutput {
			result := map[string]string{
				"version": Version,
				"build":   Build,
			}
			if commit != "" {
				result["commit"] = commit
			}
			outputJSON(result)
			return
		}

		if commit != "" {
			fmt.Printf("bt version %s (%s: %s)\n", Version, Build, shortCommit(commit))
		} else {
			fmt.Printf("bt version %s (%s)\n", Version, Build)
		}
	},
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
