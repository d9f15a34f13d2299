package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errInvalid is returned when a diagram fails validation so the process
// exits non-zero; the findings have already been printed.
var errInvalid = errors.New("diagram is not valid")

var validateCmd = &cobra.Command{
	Use:   "validate <file|->",
	Short: "Check PlantUML source without writing a file",
	Long: `Check a PlantUML file for @start/@end directives and run a txt render
to detect syntax errors. Nothing is written. Use "-" to read from stdin.
Exits non-zero when the diagram is not valid.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	result := a.diagrams.Validate(cmd.Context(), source)

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, result); err != nil {
			return err
		}
	} else {
		if result.Valid {
			successColor.Fprint(out, "✔ ")
		} else {
			failureColor.Fprint(out, "✘ ")
		}
		fmt.Fprintln(out, result.Message)
		for _, issue := range result.Issues {
			warnColor.Fprintf(out, "  - %s\n", issue)
		}
	}

	if !result.Valid {
		return errInvalid
	}
	return nil
}
