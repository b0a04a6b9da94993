package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/avdw/jot/internal/config"
	"github.com/avdw/jot/pkg/adapters/kvfile"
	"github.com/avdw/jot/pkg/core"
)

var (
	verbose    bool
	configPath string
	dataDir    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A single-user note store with categories and reminders",
	Long: `jot keeps short text notes in flat JSON records on disk.
Notes can be categorized, flagged important, checked off, and armed
with one-shot reminders delivered as desktop notifications.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <user-config>/jot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (overrides config)")
}

// loadConfig resolves the effective configuration from file and flags.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// openEnv wires the storage adapter and a loaded store for a command.
func openEnv(cmd *cobra.Command) (*core.Store, *kvfile.Store, config.Config) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Failed to load config", err)
	}

	storage, err := kvfile.New(kvfile.Config{Dir: cfg.DataDir, Logger: slog.Default()})
	if err != nil {
		fatal("Failed to open data directory", err)
	}

	store := core.NewStore(core.StoreConfig{Storage: storage, Logger: slog.Default()})
	if err := store.Load(cmd.Context()); err != nil {
		fatal("Failed to load notes", err)
	}
	return store, storage, cfg
}
