// Package main provides the entry point for the carmarketd CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/carmarket/carmarketd/internal/config"
	"github.com/carmarket/carmarketd/internal/log"
)

// NewRootCmd creates the root command for carmarketd.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carmarketd",
		Short: "Facebook Marketplace listing importer for the car marketplace",
		Long: `carmarketd scrapes Facebook Marketplace car listings and imports them
into the marketplace database.

The serve command runs the HTTP API used by the web frontend. The preview
and import commands run the same pipeline once from the command line, which
is useful for debugging extraction against a live listing.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewPublishCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// The handler redacts tokens, secrets, and credentialed URIs.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return log.NewSecureLogger(os.Stderr, level)
}

// buildConfig creates a Config from cobra command flags, the optional config
// file, and the environment. Flags win over the file; the environment wins
// for secrets.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	foundPath := config.FindConfigFile(cfg.ConfigFilePath)

	if foundPath != "" {
		file, err := config.LoadConfigFile(foundPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", foundPath, err)
		}
		if err := file.ApplyTo(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", foundPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags overlay the file values when changed.
	flags := cmd.Flags()
	if flags.Changed("addr") {
		if cfg.Addr, err = flags.GetString("addr"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("mongo-uri") {
		if cfg.MongoURI, err = flags.GetString("mongo-uri"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("database") {
		if cfg.Database, err = flags.GetString("database"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fetch-timeout") {
		if cfg.FetchTimeout, err = flags.GetDuration("fetch-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("headless") {
		if cfg.Headless, err = flags.GetBool("headless"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("history-dir") {
		if cfg.HistoryDir, err = flags.GetString("history-dir"); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// addPipelineFlags registers the flags shared by every command that runs the
// scrape pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("fetch-timeout", "t", config.DefaultFetchTimeout,
		"Hard upper bound on one headless page load")
	cmd.Flags().Bool("headless", true,
		"Run the scrape browser without a window")
	cmd.Flags().String("user-agent", "",
		"Override the browser User-Agent")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .carmarketd.yaml in current or home directory)")
}

// addStoreFlags registers the flags shared by every command that touches the
// listing store.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("mongo-uri", config.DefaultMongoURI,
		"MongoDB connection string (or "+config.EnvMongoURI+")")
	cmd.Flags().String("database", config.DefaultDatabase,
		"MongoDB database name")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Import audit log directory (empty disables the audit log)")
}
