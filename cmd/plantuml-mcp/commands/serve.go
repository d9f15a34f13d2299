package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/plantuml-mcp/internal/server"
)

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the PlantUML tools over MCP",
	Long: `Serve MCP over stdio (the default) or, with --http, over streamable
HTTP at /mcp with a /healthz probe. This is what the root command runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addHTTPFlag(rootCmd)
	addHTTPFlag(serveCmd)
	AddCommand(serveCmd)
}

// addHTTPFlag registers --http on cmd. The root command and serve both run
// runServe, so both take it.
func addHTTPFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio (default: $PLANTUML_MCP_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a.logger.Info("starting plantuml-mcp",
		"version", buildInfo.Version,
		"commit", buildInfo.GitCommit,
		"output_dir", a.diagrams.OutputDir())
	probeRenderer(ctx, a)

	srv := server.New(a.diagrams, server.Options{
		Version:     buildInfo.Version,
		Logger:      a.logger,
		OCRLanguage: a.cfg.OCRLanguage,
	})

	addr := httpAddr
	if addr == "" {
		addr = a.cfg.HTTPAddr
	}
	if addr != "" {
		return srv.ListenAndServe(ctx, addr)
	}
	return srv.Run(ctx)
}

// probeRenderer logs the PlantUML version, or a warning when PlantUML cannot
// be started. Serving continues either way; renders report the failure.
func probeRenderer(ctx context.Context, a *app) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	version, err := a.renderer.Version(ctx)
	if err != nil {
		a.logger.Warn("plantuml unavailable", "error", err.Error())
		return
	}
	a.logger.Info("plantuml detected", "version", version)
}
