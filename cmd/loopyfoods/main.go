// loopyfoods is a lunch-tray auto-battler played in the terminal.
//
// Usage:
//
//	loopyfoods play              - Start a run in the shop
//	loopyfoods battle            - Resolve a battle between team files
//	loopyfoods teams             - Manage saved team snapshots
//	loopyfoods record            - Show the win/loss record
//	loopyfoods catalog           - List every food and kid card
//	loopyfoods config            - Print the effective configuration
//	loopyfoods serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Configuration file (default: search order in internal/config)
//	--db <path>      - Snapshot database (default: storage.path from config)
//	--seed <value>   - Set RNG seed for reproducible shops
//	--verbose        - Debug logging on stderr
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopyfoods/internal/config"
	"github.com/vovakirdan/loopyfoods/internal/storage"
	"github.com/vovakirdan/loopyfoods/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagSeed    int64
	flagVerbose bool
)

func main() {
	// Load .env for local development; OTEL_* and LOOPYFOODS_DB may live there.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: .env not loaded: %v\n", err)
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: telemetry setup failed: %v\n", err)
		shutdown = func(context.Context) error { return nil }
	}

	runErr := rootCmd.ExecuteContext(ctx)

	if err := shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error shutting down telemetry: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "loopyfoods",
	Short: "Loopy Foods - a lunch-tray auto-battler for your terminal",
	Long: `Loopy Foods is a terminal auto-battler. Fill a lunch tray, line up
hungry kids, and watch them out-eat another player's table.

Available commands:
  play     - Start a run (shop, battle, repeat)
  battle   - Resolve a battle between two team files
  teams    - List, show, import and delete saved teams
  record   - Show your win/loss record
  catalog  - List every card
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  loopyfoods play
  loopyfoods play --length short
  loopyfoods battle --player my-team.yaml
  loopyfoods battle --player a.yaml --opponent b.yaml --json
  loopyfoods serve --ssh :2222`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to snapshot database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the stderr logger shared by every command.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig resolves the configuration. LOOPYFOODS_DB overrides
// storage.path and --db overrides both.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if env := os.Getenv("LOOPYFOODS_DB"); env != "" {
		cfg.Storage.Path = env
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg, nil
}

// openStore opens the snapshot database named by cfg.
func openStore(cfg config.Config, logger *log.Logger) (*storage.Store, error) {
	return storage.Open(cfg.Storage.Path,
		storage.WithMaxSnapshots(cfg.Storage.MaxSnapshots),
		storage.WithLogger(logger),
	)
}
