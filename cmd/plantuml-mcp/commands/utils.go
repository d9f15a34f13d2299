package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/plantuml-mcp/internal/config"
	"github.com/ironsheep/plantuml-mcp/internal/diagram"
	"github.com/ironsheep/plantuml-mcp/internal/plantuml"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	failureColor = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	labelColor   = color.New(color.FgCyan)
)

// loadConfig resolves configuration and applies the global flag overrides.
// It also installs the stderr logger as slog's default; stdout belongs to
// MCP and command output.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// newRenderer builds the PlantUML subprocess renderer described by cfg.
func newRenderer(cfg config.Config, logger *slog.Logger) *plantuml.CommandRenderer {
	var r *plantuml.CommandRenderer
	if cfg.PlantUMLJar != "" {
		r = plantuml.NewJarRenderer(cfg.JavaCommand, cfg.PlantUMLJar)
	} else {
		r = &plantuml.CommandRenderer{Command: cfg.PlantUMLCommand}
	}
	r.Timeout = cfg.RenderTimeout
	r.Logger = logger
	return r
}

// app is the wiring shared by the commands that render.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	renderer *plantuml.CommandRenderer
	diagrams *diagram.Service
}

// newApp loads configuration and wires the renderer into a diagram service,
// creating the output directory.
func newApp() (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	renderer := newRenderer(cfg, logger)
	svc, err := diagram.NewService(renderer, cfg.OutputDir, diagram.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, renderer: renderer, diagrams: svc}, nil
}

// readSource returns the contents of path, or of stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// printJSON writes v as indented JSON, the same shape the MCP tools return.
func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
