package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	httpapi "github.com/slidesmith/slidesmith/internal/adapters/primary/http"
)

var (
	// Serve command flags
	servePort int
	serveHost string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the deck generation HTTP service",
	Long: `Start the HTTP service. POST /chat generates a deck from a
natural-language message, GET /templates lists available templates, and
/ws offers the same chat interface over WebSocket.

Example:
  slidesmith serve
  slidesmith serve --port 9000 --host 0.0.0.0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, map[string]interface{}{
		"port": servePort,
		"host": serveHost,
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

	server := httpapi.NewServer(cfg.Server, svc, logger)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	fmt.Printf("slidesmith listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

	<-ctx.Done()

	// The parent context is already canceled; shut down on a fresh one.
	return server.Stop(context.Background())
}
