package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/plantuml-mcp/internal/diagram"
	"github.com/ironsheep/plantuml-mcp/internal/plantuml"
)

// call invokes a tool in library mode and decodes its payload.
func call(t *testing.T, s *Server, name string, args any) map[string]interface{} {
	t.Helper()
	res, err := s.CallTool(context.Background(), name, args)
	require.NoError(t, err)
	return payload(t, res)
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	require.Len(t, tools, 4)

	required := map[string][]string{
		ToolRender:         {"plantuml_text"},
		ToolRenderFromFile: {"input_path"},
		ToolValidate:       {"plantuml_text"},
		ToolInspect:        {"path"},
	}
	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			want, ok := required[tool.Name]
			require.True(t, ok, "unexpected tool %s", tool.Name)
			assert.Equal(t, "object", tool.InputSchema["type"])
			assert.Equal(t, want, tool.InputSchema["required"])

			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, field := range want {
				assert.Contains(t, props, field)
			}
		})
	}
}

func TestGetToolDefinitions_FormatEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		format, ok := props["format"].(map[string]interface{})
		if !ok {
			continue
		}
		assert.Equal(t, []string{"png", "svg", "txt"}, format["enum"], tool.Name)
		assert.Equal(t, "png", format["default"], tool.Name)
	}
}

func TestRender_Formats(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))

	tests := []struct {
		format     string
		wantPrefix interface{}
	}{
		{"png", "data:image/png;base64,"},
		{"svg", "data:image/svg;base64,"},
		{"txt", nil},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := call(t, s, ToolRender, map[string]any{
				"plantuml_text": minimalDiagram,
				"format":        tt.format,
			})
			require.Equal(t, true, out["success"], out["error"])
			assert.Equal(t, tt.format, out["format"])
			assert.True(t, strings.HasSuffix(out["path"].(string), "."+tt.format))
			if tt.wantPrefix == nil {
				assert.Nil(t, out["base64"])
				assert.Contains(t, out, "base64", "txt results carry an explicit null")
			} else {
				assert.True(t, strings.HasPrefix(out["base64"].(string), tt.wantPrefix.(string)))
			}
		})
	}
}

func TestRender_FailurePayloads(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))

	tests := []struct {
		name      string
		args      any
		wantError string
	}{
		{"missing text", map[string]any{}, "plantuml_text is required"},
		{"nil arguments", nil, "plantuml_text is required"},
		{"bad format", map[string]any{"plantuml_text": minimalDiagram, "format": "pdf"}, `unsupported format "pdf"`},
		{"wrong type", map[string]any{"plantuml_text": 42}, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := call(t, s, ToolRender, tt.args)
			assert.Equal(t, false, out["success"])
			assert.Contains(t, out["error"], tt.wantError)
			assert.NotContains(t, out, "path", "failures only carry success and error")
		})
	}
}

func TestRender_RendererFailure(t *testing.T) {
	s := newTestServer(t, plantuml.RendererFunc(func(context.Context, string, plantuml.Format) ([]byte, error) {
		return nil, assert.AnError
	}))

	out := call(t, s, ToolRender, map[string]any{"plantuml_text": minimalDiagram})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, assert.AnError.Error(), out["error"])
}

func TestRenderFromFile(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))
	dir := t.TempDir()
	input := filepath.Join(dir, "flow.puml")
	require.NoError(t, os.WriteFile(input, []byte(minimalDiagram), 0o644))

	out := call(t, s, ToolRenderFromFile, map[string]any{"input_path": input, "format": "svg"})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, filepath.Join(dir, "flow.svg"), out["path"])

	data, err := os.ReadFile(filepath.Join(dir, "flow.svg"))
	require.NoError(t, err)
	assert.Equal(t, minimalDiagram, string(data))
}

func TestRenderFromFile_MissingFile(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))

	out := call(t, s, ToolRenderFromFile, map[string]any{"input_path": filepath.Join(t.TempDir(), "nope.puml")})
	assert.Equal(t, false, out["success"])
	assert.True(t, strings.HasPrefix(out["error"].(string), diagram.ReadFailurePrefix), out["error"])
}

func TestValidate(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))

	tests := []struct {
		name        string
		text        string
		wantValid   bool
		wantIssues  []interface{}
		wantMessage string
	}{
		{"minimal", minimalDiagram, true, []interface{}{}, diagram.MessageValid},
		{"no directives", "Alice -> Bob", false,
			[]interface{}{diagram.IssueMissingStart, diagram.IssueMissingEnd}, diagram.MessageIssuesFound},
		{"missing end", "@startuml\nA -> B\n", false,
			[]interface{}{diagram.IssueMissingEnd}, diagram.MessageIssuesFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := call(t, s, ToolValidate, map[string]any{"plantuml_text": tt.text})
			assert.Equal(t, tt.wantValid, out["valid"])
			assert.Equal(t, tt.wantIssues, out["issues"])
			assert.Equal(t, tt.wantMessage, out["message"])
		})
	}
}

func TestValidate_InvalidArguments(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))

	out := call(t, s, ToolValidate, map[string]any{"plantuml_text": []int{1}})
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, diagram.MessageIssuesFound, out["message"])
	require.Len(t, out["issues"], 1)
	assert.Contains(t, out["issues"].([]interface{})[0], "invalid arguments")
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, stubRenderer(40, 30))

	rendered := call(t, s, ToolRender, map[string]any{"plantuml_text": minimalDiagram})
	require.Equal(t, true, rendered["success"])

	out := call(t, s, ToolInspect, map[string]any{
		"path":          rendered["path"],
		"palette_size":  2,
		"preview_width": 20,
	})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, rendered["path"], out["path"])
	assert.Equal(t, 40.0, out["width"])
	assert.Equal(t, 30.0, out["height"])
	assert.Equal(t, "png", out["format"])
	assert.Equal(t, "#FFFFFF", out["background"])
	assert.Len(t, out["palette"], 1)
	assert.NotContains(t, out, "text")

	preview := out["preview"].(map[string]interface{})
	assert.Equal(t, 20.0, preview["width"])
	assert.Equal(t, 15.0, preview["height"])
}

func TestInspect_SeesRerenderedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "same.png")
	size := 10
	renderer := plantuml.RendererFunc(func(ctx context.Context, source string, format plantuml.Format) ([]byte, error) {
		return stubRenderer(size, size).Render(ctx, source, format)
	})
	s := newTestServer(t, renderer)

	render := func() {
		out := call(t, s, ToolRender, map[string]any{"plantuml_text": minimalDiagram, "output_path": target})
		require.Equal(t, true, out["success"])
	}
	inspectWidth := func() float64 {
		out := call(t, s, ToolInspect, map[string]any{"path": target})
		require.Equal(t, true, out["success"], out["error"])
		return out["width"].(float64)
	}

	render()
	assert.Equal(t, 10.0, inspectWidth())

	size = 25
	render()
	assert.Equal(t, 25.0, inspectWidth())
}

func TestInspect_SeesExternalRewriteThroughAlias(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))
	dir := t.TempDir()
	target := filepath.Join(dir, "same.png")
	alias := dir + "/./same.png"

	write := func(size int) {
		data, err := stubRenderer(size, size).Render(context.Background(), minimalDiagram, plantuml.FormatPNG)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(target, data, 0o644))
	}

	write(10)
	out := call(t, s, ToolInspect, map[string]any{"path": alias})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, 10.0, out["width"])

	write(25)
	out = call(t, s, ToolInspect, map[string]any{"path": alias})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, 25.0, out["width"])
	assert.Equal(t, 25.0, out["height"])

	stat, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, float64(stat.Size()), out["file_size_bytes"])
}

func TestInspect_Failures(t *testing.T) {
	s := newTestServer(t, stubRenderer(8, 8))
	svg := filepath.Join(t.TempDir(), "d.svg")
	require.NoError(t, os.WriteFile(svg, []byte("<svg/>"), 0o644))

	tests := []struct {
		name      string
		args      any
		wantError string
	}{
		{"missing path", map[string]any{}, "path is required"},
		{"svg", map[string]any{"path": svg}, "unsupported image format"},
		{"missing file", map[string]any{"path": filepath.Join(t.TempDir(), "x.png")}, "x.png"},
		{"negative palette", map[string]any{"path": svg, "palette_size": -1}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := call(t, s, ToolInspect, tt.args)
			assert.Equal(t, false, out["success"])
			assert.Contains(t, out["error"], tt.wantError)
		})
	}
}

func TestDecodeArgs(t *testing.T) {
	var a renderArgs
	assert.NoError(t, decodeArgs(nil, &a))
	assert.NoError(t, decodeArgs(json.RawMessage("null"), &a))
	assert.NoError(t, decodeArgs(json.RawMessage(`{"plantuml_text":"x","format":"svg"}`), &a))
	assert.Equal(t, renderArgs{PlantUMLText: "x", Format: "svg"}, a)

	err := decodeArgs(json.RawMessage(`{"plantuml_text":`), &a)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid arguments: "))
}

func TestMustMarshalJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", mustMarshalJSON(map[string]int{"a": 1}))
	assert.Equal(t, "", mustMarshalJSON(make(chan int)))
}
