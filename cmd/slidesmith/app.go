package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	httpapi "github.com/slidesmith/slidesmith/internal/adapters/primary/http"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/charts"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/config"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/llm"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/parser"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/pptx"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/sanitize"
	"github.com/slidesmith/slidesmith/internal/adapters/secondary/templates"
	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
	"github.com/slidesmith/slidesmith/internal/domain/services"
)

// loadConfig layers defaults, the global file, the local file,
// environment variables and CLI flags into the effective configuration.
func loadConfig(ctx context.Context, flags map[string]interface{}) (*entities.Config, error) {
	loader := config.NewTOMLLoader()
	merger := config.NewConfigMerger()

	global, err := loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	local, err := loader.LoadLocal(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	cfg := merger.Merge(config.GetDefaultConfig(), global, local)
	cfg = merger.ApplyEnvVars(cfg)
	cfg = merger.ApplyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the process logger from the configured level. The
// verbose flag forces debug output.
func newLogger(cfg *entities.Config, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildServices wires the pipeline adapters together.
func buildServices(cmd *cobra.Command, cfg *entities.Config, logger *slog.Logger) (httpapi.Services, error) {
	san := sanitize.NewPolicy()

	tpl := templates.NewProvider(logger)
	if path, _ := cmd.Flags().GetString("templates"); path != "" {
		if err := tpl.LoadOverrides(path); err != nil {
			return httpapi.Services{}, err
		}
	}

	return httpapi.Services{
		Parser:    parser.NewMarkdownDeckParser(san, logger),
		Validator: services.NewDeckValidator(logger),
		Assembler: pptx.NewAssembler(charts.NewVegaLiteRenderer(logger), tpl, logger),
		Templates: tpl,
		Sanitizer: san,
		Intent:    services.NewIntentExtractor(san, logger),
		Generators: func(provider, apiKey string) (ports.TextGenerator, error) {
			return llm.ForProvider(provider, apiKey, logger)
		},
		DefaultProvider: cfg.Generator.Provider,
		DefaultAPIKey:   cfg.Generator.APIKey,
		WorkRoot:        cfg.Workspace.Root,
	}, nil
}
