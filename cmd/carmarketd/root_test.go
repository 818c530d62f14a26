package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "carmarketd" {
			t.Errorf("expected use 'carmarketd', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		want := map[string]bool{
			"serve":                 false,
			"preview <listing-url>": false,
			"import <listing-url>":  false,
			"publish <car-id>":      false,
			"version":               false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Use]; ok {
				want[sub.Use] = true
			}
		}
		for use, found := range want {
			if !found {
				t.Errorf("expected subcommand %q", use)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestBuildConfig tests flag and file overlay order.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults when no flags are set", func(t *testing.T) {
		t.Parallel()

		cmd := NewServeCmd()
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.Addr != ":5000" {
			t.Errorf("Addr: got %q", cfg.Addr)
		}
		if !cfg.Headless {
			t.Error("Headless should default to true")
		}
	})

	t.Run("changed flags overlay the defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewServeCmd()
		if err := cmd.Flags().Set("addr", ":9999"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("headless", "false"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.Addr != ":9999" {
			t.Errorf("Addr: got %q", cfg.Addr)
		}
		if cfg.Headless {
			t.Error("Headless flag should apply")
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewServeCmd()
		if err := cmd.Flags().Set("config", "/nonexistent/carmarketd.yaml"); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Fatal("expected error for an explicitly named missing config file")
		}
	})
}
