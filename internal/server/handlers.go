package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/plantuml-mcp/internal/diagram"
	"github.com/ironsheep/plantuml-mcp/internal/imaging"
	"github.com/ironsheep/plantuml-mcp/internal/ocr"
)

// executeTool dispatches tool execution to the appropriate handler function.
//
// Handlers never fail for bad input or rendering problems; those come back
// as failure payloads. The only error is an unknown tool name.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case ToolRender:
		return s.handleRender(ctx, args), nil
	case ToolRenderFromFile:
		return s.handleRenderFromFile(ctx, args), nil
	case ToolValidate:
		return s.handleValidate(ctx, args), nil
	case ToolInspect:
		return s.handleInspect(args), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// decodeArgs unmarshals tool arguments. A missing arguments object decodes
// as empty.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Render Handlers ===

type renderArgs struct {
	PlantUMLText string `json:"plantuml_text"`
	Format       string `json:"format"`
	OutputPath   string `json:"output_path"`
}

func (s *Server) handleRender(ctx context.Context, args json.RawMessage) *diagram.RenderResult {
	var a renderArgs
	if err := decodeArgs(args, &a); err != nil {
		return &diagram.RenderResult{Error: err.Error()}
	}

	result := s.diagrams.Render(ctx, diagram.RenderRequest{
		Text:       a.PlantUMLText,
		Format:     a.Format,
		OutputPath: a.OutputPath,
	})
	s.afterRender(result)
	return result
}

type renderFromFileArgs struct {
	InputPath  string `json:"input_path"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleRenderFromFile(ctx context.Context, args json.RawMessage) *diagram.RenderResult {
	var a renderFromFileArgs
	if err := decodeArgs(args, &a); err != nil {
		return &diagram.RenderResult{Error: err.Error()}
	}

	result := s.diagrams.RenderFromFile(ctx, diagram.RenderRequest{
		InputPath:  a.InputPath,
		Format:     a.Format,
		OutputPath: a.OutputPath,
	})
	s.afterRender(result)
	return result
}

// afterRender drops any cached decode of a path the render just rewrote.
func (s *Server) afterRender(result *diagram.RenderResult) {
	if result.Success {
		s.cache.Evict(result.Path)
	}
}

// === Validation Handler ===

type validateArgs struct {
	PlantUMLText string `json:"plantuml_text"`
}

func (s *Server) handleValidate(ctx context.Context, args json.RawMessage) *diagram.ValidationResult {
	var a validateArgs
	if err := decodeArgs(args, &a); err != nil {
		return &diagram.ValidationResult{
			Valid:   false,
			Issues:  []string{err.Error()},
			Message: diagram.MessageIssuesFound,
		}
	}
	return s.diagrams.Validate(ctx, a.PlantUMLText)
}

// === Inspection Handler ===

type inspectArgs struct {
	Path         string `json:"path"`
	PaletteSize  int    `json:"palette_size"`
	PreviewWidth int    `json:"preview_width"`
	Region       string `json:"region"`
	ExtractText  bool   `json:"extract_text"`
	Language     string `json:"language"`
}

// inspectResult is the inspect_diagram payload. Diagram fields are inlined
// on success; Text is present only when OCR was requested and succeeded.
type inspectResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*imaging.DiagramInfo
	Text      *ocr.OCRResult `json:"text,omitempty"`
	TextError string         `json:"text_error,omitempty"`
}

func (s *Server) handleInspect(args json.RawMessage) *inspectResult {
	var a inspectArgs
	if err := decodeArgs(args, &a); err != nil {
		return &inspectResult{Error: err.Error()}
	}
	if a.Path == "" {
		return &inspectResult{Error: "path is required"}
	}
	if a.PaletteSize < 0 || a.PreviewWidth < 0 {
		return &inspectResult{Error: "palette_size and preview_width must not be negative"}
	}

	info, err := imaging.InspectDiagram(s.cache, a.Path, imaging.InspectOptions{
		PaletteSize:  a.PaletteSize,
		PreviewWidth: a.PreviewWidth,
		Region:       a.Region,
	})
	if err != nil {
		return &inspectResult{Error: err.Error()}
	}

	result := &inspectResult{Success: true, DiagramInfo: info}
	if !a.ExtractText {
		return result
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		result.TextError = err.Error()
		return result
	}
	language := a.Language
	if language == "" {
		language = s.ocrLanguage
	}
	text, err := ocr.ExtractText(img, language)
	if err != nil {
		s.logger.Warn("ocr failed", "path", a.Path, "language", language, "error", err)
		result.TextError = err.Error()
		return result
	}
	result.Text = text
	return result
}
