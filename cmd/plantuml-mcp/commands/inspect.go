package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/ironsheep/plantuml-mcp/internal/imaging"
	"github.com/ironsheep/plantuml-mcp/internal/ocr"
)

var (
	inspectPalette      int
	inspectPreviewWidth int
	inspectRegion       string
	inspectText         bool
	inspectLanguage     string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Describe a rendered png diagram",
	Long: `Report the dimensions, background and dominant colors of a rendered
diagram. --text runs OCR over it and prints the recognized text.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectPalette, "palette", "p", imaging.DefaultPaletteSize, "Number of dominant colors")
	inspectCmd.Flags().IntVar(&inspectPreviewWidth, "preview-width", 0, "Include a preview thumbnail at most this wide (JSON output only)")
	inspectCmd.Flags().StringVar(&inspectRegion, "region", "", "Preview only this region: "+strings.Join(imaging.RegionNames(), ", ")+" (JSON output only)")
	inspectCmd.Flags().BoolVar(&inspectText, "text", false, "Extract text with OCR")
	inspectCmd.Flags().StringVar(&inspectLanguage, "language", "", "OCR language (default: $PLANTUML_MCP_OCR_LANGUAGE or eng)")
	AddCommand(inspectCmd)
}

// inspectOutput mirrors the inspect_diagram tool payload.
type inspectOutput struct {
	*imaging.DiagramInfo
	Text *ocr.OCRResult `json:"text,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	cache := imaging.NewImageCache()
	info, err := imaging.InspectDiagram(cache, args[0], imaging.InspectOptions{
		PaletteSize:  inspectPalette,
		PreviewWidth: inspectPreviewWidth,
		Region:       inspectRegion,
	})
	if err != nil {
		return err
	}
	result := inspectOutput{DiagramInfo: info}

	if inspectText {
		img, err := cache.Load(args[0])
		if err != nil {
			return err
		}
		language := inspectLanguage
		if language == "" {
			language = cfg.OCRLanguage
		}
		logger.Debug("running ocr", "path", args[0], "language", language)
		if result.Text, err = ocr.ExtractText(img, language); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, result)
	}
	printInspect(out, result)
	return nil
}

func printInspect(out io.Writer, r inspectOutput) {
	labelColor.Fprint(out, "Image:      ")
	fmt.Fprintf(out, "%s (%s, %dx%d, %d bytes)\n", r.Path, r.Format, r.Width, r.Height, r.FileSizeBytes)
	labelColor.Fprint(out, "Background: ")
	fmt.Fprintln(out, r.Background)

	labelColor.Fprintln(out, "Palette:")
	for _, c := range r.Palette {
		fmt.Fprint(out, "  ")
		swatch(c.Hex).Fprint(out, "  ")
		fmt.Fprintf(out, " %s %6.2f%%  hsl(%d, %d%%, %d%%)\n", c.Hex, c.Percentage, c.HSL.H, c.HSL.S, c.HSL.L)
	}

	if r.Text != nil {
		labelColor.Fprintln(out, "Text:")
		fmt.Fprintln(out, r.Text.FullText)
	}
}

// swatch returns a color whose background is hex. Unparseable values get
// no background.
func swatch(hex string) *color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.New(color.Reset)
	}
	r, g, b := c.RGB255()
	return color.BgRGB(int(r), int(g), int(b))
}
