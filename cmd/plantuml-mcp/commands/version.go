package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the plantuml-mcp version, build details and the version of the PlantUML engine it will run.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		engine, engineErr := newRenderer(cfg, logger).Version(ctx)

		out := cmd.OutOrStdout()
		if jsonOutput {
			info := map[string]string{
				"version":    buildInfo.Version,
				"build_time": buildInfo.BuildTime,
				"git_commit": buildInfo.GitCommit,
				"plantuml":   engine,
			}
			if engineErr != nil {
				info["plantuml_error"] = engineErr.Error()
			}
			return printJSON(out, info)
		}

		fmt.Fprintf(out, "plantuml-mcp %s\n", buildInfo.Version)
		fmt.Fprintf(out, "  Build time: %s\n", buildInfo.BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", buildInfo.GitCommit)
		if engineErr != nil {
			warnColor.Fprintf(out, "  PlantUML:   not available (%v)\n", engineErr)
		} else {
			fmt.Fprintf(out, "  PlantUML:   %s\n", engine)
		}
		return nil
	},
}

func init() {
	AddCommand(versionCmd)
}
