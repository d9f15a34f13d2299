package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Global flags shared by every command.
var (
	configPath string
	outputDir  string
	logLevel   string
	jsonOutput bool
)

var buildInfo = struct {
	Version   string
	BuildTime string
	GitCommit string
}{"dev", "unknown", "unknown"}

// SetBuildInfo records the version details injected into main at build time.
func SetBuildInfo(version, buildTime, gitCommit string) {
	buildInfo.Version = version
	buildInfo.BuildTime = buildTime
	buildInfo.GitCommit = gitCommit
}

var rootCmd = &cobra.Command{
	Use:   "plantuml-mcp",
	Short: "MCP server that renders and validates PlantUML diagrams",
	Long: `plantuml-mcp exposes PlantUML to MCP clients through the tools
render_plantuml, render_plantuml_from_file, validate_plantuml and
inspect_diagram. Without a subcommand it serves MCP over stdio.

The render, validate and inspect subcommands run the same operations
directly from the shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $PLANTUML_MCP_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "d", "", "Directory for generated diagrams (default: $PLANTUML_MCP_OUTPUT_DIR or ./output next to the binary)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $PLANTUML_MCP_LOG_LEVEL or info)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
