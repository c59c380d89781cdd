package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/export"
	"github.com/webqa-tools/bugtrack/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bugs as CSV, JSONL, or YAML",
	Long: `Export the bugs matching the given filters.

CSV flattens each record to one row of scalar fields (logs become a
log_count column); JSONL and YAML carry the full records including log
entries. An empty result set exports an empty payload.`,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		filter, preds, err := buildListQuery(cmd)
		if err != nil {
			exitOnError(err)
		}
		bugs, err := engine.List(cmd.Context(), filter)
		if err != nil {
			exitOnError(err)
		}
		bugs = query.Apply(bugs, preds...)

		var out io.Writer = os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath) // #nosec G304 -- user-chosen export destination
			if err != nil {
				FatalError("%v", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		switch format {
		case "csv":
			payload, err := export.ToTabular(bugs)
			if err != nil {
				exitOnError(err)
			}
			if _, err := out.Write(payload); err != nil {
				FatalError("%v", err)
			}
		case "jsonl":
			if err := export.WriteJSONL(out, bugs); err != nil {
				exitOnError(err)
			}
		case "yaml":
			if err := export.WriteYAML(out, bugs); err != nil {
				exitOnError(err)
			}
		default:
			FatalError("unknown format %q (want csv, jsonl, or yaml)", format)
		}

		if outPath != "" && !quietFlag {
			fmt.Fprintf(os.Stderr, "Exported %d bug(s) to %s\n", len(bugs), outPath)
		}
	},
}

func init() {
	registerFilterFlags(exportCmd)
	exportCmd.Flags().StringP("format", "f", "csv", "Export format: csv, jsonl, yaml")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
