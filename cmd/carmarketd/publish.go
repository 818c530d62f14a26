package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carmarket/carmarketd/internal/platform"
)

// errNotOwned reports an ownership failure from the publish command.
var errNotOwned = errors.New("car is not owned by the given seller")

// NewPublishCmd creates the publish command.
func NewPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <car-id>",
		Short: "Post a stored car to the supported external platforms",
		Long: `Publish posts an already-imported car to the external platforms and
prints the per-platform outcome. Platforms without a posting integration
report why they were skipped instead of failing the command.

Examples:
  carmarketd publish --seller 66b0c9f2a1b2c3d4e5f60789 66b0ca11a1b2c3d4e5f60aaa`,
		Args: cobra.ExactArgs(1),
		RunE: runPublishCmd,
	}

	cmd.Flags().StringP("seller", "s", "", "User ID that owns the car (required)")
	if err := cmd.MarkFlagRequired("seller"); err != nil {
		panic(err)
	}
	addStoreFlags(cmd)
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .carmarketd.yaml in current or home directory)")

	return cmd
}

// runPublishCmd executes the publish command.
func runPublishCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.MongoURI == "" || cfg.Database == "" {
		return errors.New("configuration error: MongoDB URI and database are required")
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

	car, err := store.FindCarByID(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load car %s: %w", args[0], err)
	}
	if !car.OwnedBy(sellerID) {
		return errNotOwned
	}

	results := platform.PostAll(ctx, car, []platform.Platform{
		platform.Facebook,
		platform.OLX,
		platform.Edmunds,
	})

	for _, r := range results {
		if r.Posted() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", r.Platform, r.Status)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s (%s)\n", r.Platform, r.Status, r.Reason)
	}

	return nil
}
