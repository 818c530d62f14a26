package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/carmarket/carmarketd/internal/auth"
	"github.com/carmarket/carmarketd/internal/config"
	"github.com/carmarket/carmarketd/internal/history"
	"github.com/carmarket/carmarketd/internal/importer"
	"github.com/carmarket/carmarketd/internal/scrape"
	"github.com/carmarket/carmarketd/internal/server"
	"github.com/carmarket/carmarketd/internal/storage"
)

// connectTimeout bounds the initial MongoDB connect and ping.
const connectTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the marketplace frontend",
		Long: `Serve runs the HTTP API that the web frontend calls to preview and
import Facebook Marketplace listings.

The JWT signing secret is read from ` + config.EnvJWTSecret + ` or the config
file; there is no flag for it on purpose.

Examples:
  # Run with defaults (listens on :5000, local MongoDB)
  carmarketd serve

  # Run against a remote MongoDB
  CARMARKETD_MONGO_URI=mongodb://user:pass@db:27017 carmarketd serve

  # Use a custom configuration file
  carmarketd serve -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultAddr, "HTTP listen address")
	addStoreFlags(cmd)
	addPipelineFlags(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runServe(ctx, cfg, logger)
}

// runServe wires the pipeline and runs the HTTP server until shutdown.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	store, err := storage.Connect(connectCtx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("failed to close MongoDB connection", "error", err)
		}
	}()
	logger.Info("connected to MongoDB", "database", cfg.Database)

	fetcher := newFetcher(cfg)

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
		logger.Info("import history opened", "path", audit.Path())
		importerOpts = append(importerOpts, importer.WithAuditLog(audit))
	}

	imp := importer.New(fetcher, store, importerOpts...)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	srv := server.New(imp, store, verifier,
		server.WithLogger(logger),
		server.WithUserStore(store),
	)

	return srv.ListenAndServe(ctx, cfg.Addr, config.DefaultShutdownTimeout)
}

// newFetcher builds the headless browser fetcher from the config.
func newFetcher(cfg *config.Config) *scrape.BrowserFetcher {
	opts := []scrape.FetcherOption{
		scrape.WithFetchTimeout(cfg.FetchTimeout),
		scrape.WithHeadless(cfg.Headless),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, scrape.WithUserAgent(cfg.UserAgent))
	}
	return scrape.NewBrowserFetcher(opts...)
}
