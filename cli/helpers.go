package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fretforge/fretforge/engine/configurator"
	"github.com/fretforge/fretforge/engine/quote"
	"github.com/fretforge/fretforge/engine/sheet"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

// addCommonFlags registers the flags shared by every subcommand. Flags only
// override configuration when explicitly set; otherwise env vars and built-in
// defaults apply.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("env-file", defaultEnvFile, "Path to the environment variables file")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().Bool("log-json", false, "Output logs in JSON format")
	cmd.Flags().Bool("debug", false, "Enable debug mode (sets log level to debug)")
	cmd.Flags().String("fixture", "", "Load rows from a local YAML fixture instead of the remote sheet")
	cmd.Flags().String("sheet-url", "", "Base URL of the sheet endpoint (env: FRETFORGE_SHEETS_BASE_URL)")
	cmd.Flags().String("document-id", "", "Sheet document id (env: FRETFORGE_SHEETS_DOCUMENT_ID)")

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return fmt.Errorf("failed to get debug flag: %w", err)
		}
		if debug {
			return cmd.Flags().Set("log-level", "debug")
		}
		return nil
	}
}

func loadEnvFile(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		// A missing default .env is fine; an explicit path must exist.
		if !cmd.Flags().Changed("env-file") {
			return nil
		}
		return fmt.Errorf("env file %s not found: %w", path, statErr)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// overrideFromFlags copies explicitly set flags into the loader as the
// highest-precedence configuration source.
func overrideFromFlags(cmd *cobra.Command, loader *config.Loader) error {
	stringOverrides := map[string]string{
		"log-level":   "runtime.log_level",
		"fixture":     "sheets.fixture_path",
		"sheet-url":   "sheets.base_url",
		"document-id": "sheets.document_id",
	}
	for flag, key := range stringOverrides {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		loader.SetOverride(key, value)
	}
	if cmd.Flags().Changed("log-json") {
		value, err := cmd.Flags().GetBool("log-json")
		if err != nil {
			return fmt.Errorf("failed to get log-json flag: %w", err)
		}
		loader.SetOverride("runtime.log_json", value)
	}
	return nil
}

// setupContext loads the env file and configuration, builds the logger and
// returns a context carrying both. Commands read the effective config back
// with config.FromContext.
func setupContext(cmd *cobra.Command) (context.Context, error) {
	if err := loadEnvFile(cmd); err != nil {
		return nil, err
	}
	loader := config.NewLoader()
	if err := overrideFromFlags(cmd, loader); err != nil {
		return nil, err
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.NewLogger(&logger.Config{
		Level: logger.LogLevel(cfg.Runtime.LogLevel),
		JSON:  cfg.Runtime.LogJSON,
	})
	ctx := logger.ContextWithLogger(cmd.Context(), log)
	ctx = config.ContextWithConfig(ctx, cfg)
	return ctx, nil
}

// buildSource assembles the row source chain: fixture file or remote client,
// optionally fronted by the TTL cache.
func buildSource(cfg *config.Config) (sheet.Source, error) {
	var source sheet.Source
	if cfg.Sheets.FixturePath != "" {
		source = sheet.NewFileSource(cfg.Sheets.FixturePath)
	} else {
		source = sheet.NewClient(cfg.Sheets)
	}
	if !cfg.Cache.Enabled {
		return source, nil
	}
	cached, err := sheet.NewCachedSource(source, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to build row cache: %w", err)
	}
	return cached, nil
}

func buildService(cfg *config.Config) (*configurator.Service, error) {
	source, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}
	return configurator.NewService(source, cfg.Sheets, quote.NewNotifier(cfg.Notify)), nil
}
