package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/carmarket/carmarketd/internal/config"
	"github.com/carmarket/carmarketd/internal/history"
	"github.com/carmarket/carmarketd/internal/importer"
	"github.com/carmarket/carmarketd/internal/model"
	"github.com/carmarket/carmarketd/internal/storage"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <listing-url>",
		Short: "Scrape a Marketplace listing and store it as a car",
		Long: `Import runs the full pipeline once from the command line: scrape the
listing, normalize it into a car, and store it owned by the given seller.

The seller must be an existing user's ID. This bypasses the HTTP API's
bearer-token check, so it is meant for operators, not end users.

Examples:
  carmarketd import --seller 66b0c9f2a1b2c3d4e5f60789 \
    https://www.facebook.com/marketplace/item/123456789`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	cmd.Flags().StringP("seller", "s", "", "User ID that will own the imported car (required)")
	if err := cmd.MarkFlagRequired("seller"); err != nil {
		panic(err)
	}
	addStoreFlags(cmd)
	addPipelineFlags(cmd)

	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateStoreConfig(cfg); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	sellerID, err := cmd.Flags().GetString("seller")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := connectStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	importerOpts := []importer.Option{
		importer.WithUserStore(store),
		importer.WithLogger(logger),
	}

	if cfg.HistoryDir != "" {
		audit, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open import history: %w", err)
		}
		defer audit.Close()
		importerOpts = append(importerOpts, importer.WithAuditLog(audit))
	}

	imp := importer.New(newFetcher(cfg), store, importerOpts...)

	fmt.Fprintf(cmd.OutOrStdout(), "Importing %s...\n", args[0])
	startTime := time.Now()

	car, err := imp.Import(ctx, args[0], model.Identity{ID: sellerID})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %s as %s in %s\n",
		car.Brand, car.Model, car.ID.Hex(), elapsed.Round(time.Millisecond))

	return nil
}

// validateStoreConfig checks the subset of the config the one-shot commands
// need. Unlike serve, they have no use for a JWT secret or listen address.
func validateStoreConfig(cfg *config.Config) error {
	if cfg.MongoURI == "" {
		return config.ErrNoMongoURI
	}
	if cfg.Database == "" {
		return config.ErrNoDatabase
	}
	if cfg.FetchTimeout <= 0 {
		return config.ErrInvalidFetchTimeout
	}
	return nil
}

// connectStore opens the MongoDB listing store with a bounded connect, and
// returns a cleanup function that closes it with its own timeout.
func connectStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage.Mongo, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	store, err := storage.Connect(connectCtx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	closeStore := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("failed to close MongoDB connection", "error", err)
		}
	}

	return store, closeStore, nil
}
