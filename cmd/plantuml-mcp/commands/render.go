package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/plantuml-mcp/internal/diagram"
	"github.com/ironsheep/plantuml-mcp/internal/plantuml"
)

var (
	renderFormat string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render a PlantUML file to png, svg or txt",
	Long: `Render a PlantUML source file. The output is written next to the input
with the format's extension unless --output is given. Use "-" to read the
source from stdin; the output then goes to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "t", string(plantuml.DefaultFormat), "Output format: png, svg or txt")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file path")
	AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	var result *diagram.RenderResult
	if args[0] == "-" {
		source, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}
		result = a.diagrams.Render(cmd.Context(), diagram.RenderRequest{
			Text:       source,
			Format:     renderFormat,
			OutputPath: renderOutput,
		})
	} else {
		result = a.diagrams.RenderFromFile(cmd.Context(), diagram.RenderRequest{
			InputPath:  args[0],
			Format:     renderFormat,
			OutputPath: renderOutput,
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, result); err != nil {
			return err
		}
	} else if result.Success {
		successColor.Fprint(out, "✔ ")
		fmt.Fprintf(out, "rendered %s ", result.Path)
		labelColor.Fprintf(out, "(%s, %d bytes)\n", result.Format, result.Size)
	}

	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
