package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/audit"
	"github.com/webqa-tools/bugtrack/internal/config"
	"github.com/webqa-tools/bugtrack/internal/debug"
	"github.com/webqa-tools/bugtrack/internal/query"
	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/storage/mongo"
	"github.com/webqa-tools/bugtrack/internal/telemetry"
	"github.com/webqa-tools/bugtrack/internal/tracker"
)

var (
	uriFlag    string
	dbFlag     string
	actorFlag  string
	jsonOutput bool

	verboseFlag bool
	quietFlag   bool

	// Wired by PersistentPreRun for every command that touches storage.
	store  storage.Store
	trk    *tracker.Tracker
	engine *query.Engine
)

// noStoreCommands run without a database connection.
var noStoreCommands = map[string]bool{
	"version":    true,
	"views":      true,
	"help":       true,
	"completion": true,
}

func needsStore(cmd *cobra.Command) bool {
	if cmd.Parent() == nil {
		return false // bare "bt" prints help
	}
	for c := cmd; c != nil; c = c.Parent() {
		if noStoreCommands[c.Name()] {
			return false
		}
	}
	return true
}

// resolveActor returns the identity recorded in the audit trail.
// Priority: --actor flag > BUGTRACK_ACTOR / config file > git config
// user.name > $USER > "anon".
func resolveActor() string {
	if actorFlag != "" {
		return actorFlag
	}
	if a := config.GetString("actor"); a != "" {
		return a
	}
	if out, err := exec.Command("git", "config", "user.name").Output(); err == nil {
		if gitUser := strings.TrimSpace(string(out)); gitUser != "" {
			return gitUser
		}
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "anon"
}

// openStoreWithRetry connects to MongoDB, retrying the initial
// connect/ping a few times with exponential backoff. Retry lives here in
// the CLI; the core never retries a store round trip.
func openStoreWithRetry(ctx context.Context) (storage.Store, error) {
	cfg := config.MongoConfig()
	if uriFlag != "" {
		cfg.URI = uriFlag
	}
	if dbFlag != "" {
		cfg.Database = dbFlag
	}

	var s *mongo.Store
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	err := backoff.RetryNotify(func() error {
		var err error
		s, err = mongo.Open(ctx, cfg)
		if err != nil && !errorsIsUnavailable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		debug.Logf("store connect failed, retrying in %s: %v\n", wait, err)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func init() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&uriFlag, "uri", "", "MongoDB connection string (default: config mongo.uri)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Database name (default: config mongo.database)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "Actor name for the audit trail (default: $BUGTRACK_ACTOR, git user.name, $USER)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

var rootCmd = &cobra.Command{
	Use:   "bt",
	Short: "bt - Bug-tracking record keeper",
	Long:  `Track bugs as append-only records: create them, log activity and test results against them, move them through open/in-progress/resolved/closed, and query the lot.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("bt version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help() // Help() always returns nil for cobra commands
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		if !jsonOutput {
			jsonOutput = config.GetBool("json")
		}

		if !needsStore(cmd) {
			return
		}

		ctx := cmd.Context()
		if telemetry.Enabled() {
			if err := telemetry.Init(ctx, "bt", Version); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: telemetry disabled: %v\n", err)
			}
		}

		s, err := openStoreWithRetry(ctx)
		if err != nil {
			exitOnError(err)
		}
		store = telemetry.WrapStore(s)

		actor := resolveActor()
		auditLog := audit.New(store)
		trk = tracker.New(store, auditLog, actor)
		engine = query.NewEngine(store)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if store != nil {
			if err := store.Close(ctx); err != nil {
				debug.Logf("store close: %v\n", err)
			}
		}
		telemetry.Shutdown(ctx)
	},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
