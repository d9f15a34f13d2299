package server

import (
	"github.com/ironsheep/plantuml-mcp/internal/imaging"
	"github.com/ironsheep/plantuml-mcp/internal/plantuml"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Tool names.
const (
	ToolRender         = "render_plantuml"
	ToolRenderFromFile = "render_plantuml_from_file"
	ToolValidate       = "validate_plantuml"
	ToolInspect        = "inspect_diagram"
)

func formatProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        plantuml.Formats(),
		"default":     string(plantuml.DefaultFormat),
		"description": "Output format: png, svg or txt (ASCII art). Default png",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        ToolRender,
			Description: "Render PlantUML source to an image file. Returns the written path, byte size and, for png and svg, a base64 data URI.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"plantuml_text": map[string]interface{}{
						"type":        "string",
						"description": "PlantUML source, including @startuml/@enduml",
					},
					"format": formatProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional output file path. Defaults to a generated name in the output directory",
					},
				},
				"required": []string{"plantuml_text"},
			},
		},
		{
			Name:        ToolRenderFromFile,
			Description: "Render a PlantUML file. The output is written next to the input with the format's extension unless output_path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the PlantUML source file",
					},
					"format": formatProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional output file path",
					},
				},
				"required": []string{"input_path"},
			},
		},
		{
			Name:        ToolValidate,
			Description: "Check PlantUML source for @start/@end directives and syntax errors without writing a file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"plantuml_text": map[string]interface{}{
						"type":        "string",
						"description": "PlantUML source to validate",
					},
				},
				"required": []string{"plantuml_text"},
			},
		},
		{
			Name:        ToolInspect,
			Description: "Inspect a rendered png diagram: dimensions, background, dominant colors, an optional preview of the whole diagram or one region, and optional OCR of its text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a rendered png, jpeg or gif diagram",
					},
					"palette_size": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to report. Default 5",
						"default":     5,
					},
					"preview_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview thumbnail width. 0 (default) skips the preview",
						"default":     0,
					},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.RegionNames(),
						"description": "Preview only this part of the diagram, e.g. top-left or center",
					},
					"extract_text": map[string]interface{}{
						"type":        "boolean",
						"description": "Run OCR over the diagram and include the recognized text",
						"default":     false,
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code for OCR (e.g. eng, deu)",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
