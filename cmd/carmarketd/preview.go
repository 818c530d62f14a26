package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carmarket/carmarketd/internal/importer"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <listing-url>",
		Short: "Scrape a Marketplace listing and print the extracted fields",
		Long: `Preview runs the scrape pipeline against a single listing URL and
prints the extracted fields as JSON, without persisting anything.

This is the fastest way to check extraction against a live listing when
Facebook changes its markup.

Examples:
  carmarketd preview https://www.facebook.com/marketplace/item/123456789

  # Watch the browser while it loads the page
  carmarketd preview --headless=false https://www.facebook.com/marketplace/item/123456789`,
		Args: cobra.ExactArgs(1),
		RunE: runPreviewCmd,
	}

	addPipelineFlags(cmd)

	return cmd
}

// runPreviewCmd executes the preview command.
func runPreviewCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Preview never persists, so no store is wired.
	imp := importer.New(newFetcher(cfg), nil, importer.WithLogger(logger))

	result, err := imp.Preview(ctx, args[0])
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
