package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slidesmith/slidesmith/internal/domain/services"
)

var (
	// Generate command flags
	genMessage  string
	genProvider string
	genAPIKey   string
	genOutput   string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a slide deck from a single request",
	Long: `Generate a deck without starting the server. The message is the
same natural-language request the chat endpoint accepts.

Example:
  slidesmith generate -m "Generate a deck for Q3 Sales, audience: Investors"
  slidesmith generate -m "5 slides about Go" --provider gemini --api-key $KEY`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genMessage, "message", "m", "", "Natural-language deck request (required)")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "Model provider: offline, gemini or openai (overrides config)")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "API key for the model provider (overrides config)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Directory to create the deck artifacts under (overrides config)")
	_ = generateCmd.MarkFlagRequired("message")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, map[string]interface{}{
		"provider": genProvider,
		"api-key":  genAPIKey,
		"work-dir": genOutput,
	})
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cfg, verbose)

	svc, err := buildServices(cmd, cfg, logger)
	if err != nil {
		return err
	}

	gen, err := svc.Generators(cfg.Generator.Provider, cfg.Generator.APIKey)
	if err != nil {
		return err
	}

	input, err := svc.Intent.Extract(ctx, genMessage, gen)
	if err != nil {
		return err
	}

	architect, err := services.NewArchitect(
		svc.Parser, svc.Validator, svc.Assembler,
		svc.Templates, svc.Sanitizer, svc.WorkRoot, logger,
	)
	if err != nil {
		return err
	}

	result, err := architect.GenerateDeck(ctx, input, gen)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d slides on %q\n", len(result.Deck.Slides), input.Topic)
	fmt.Printf("  pptx:     %s\n", result.PPTXFile)
	fmt.Printf("  markdown: %s\n", result.MarkdownFile)
	fmt.Printf("  json:     %s\n", result.JSONFile)

	return nil
}
