package diagram

import (
	"encoding/json"
)

// RenderRequest describes one render. Text is the diagram source for Render;
// InputPath names a file holding it for RenderFromFile.
type RenderRequest struct {
	Text       string
	InputPath  string
	Format     string
	OutputPath string
}

// RenderResult is the payload returned by the render operations.
//
// A failed render serializes as {"success": false, "error": "..."}; a
// successful one carries the written path, the format, the byte count and,
// for png and svg, a data URI in Base64 (null for txt).
type RenderResult struct {
	Success bool    `json:"success"`
	Path    string  `json:"path"`
	Format  string  `json:"format"`
	Size    int     `json:"size"`
	Base64  *string `json:"base64"`
	Error   string  `json:"error,omitempty"`
}

// MarshalJSON emits only the success flag and error message for failures.
func (r RenderResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{Error: r.Error})
	}
	type plain RenderResult
	return json.Marshal(plain(r))
}

// DataURI returns the embedded data URI, or "" when none was produced.
func (r *RenderResult) DataURI() string {
	if r.Base64 == nil {
		return ""
	}
	return *r.Base64
}

func renderFailure(msg string) *RenderResult {
	return &RenderResult{Success: false, Error: msg}
}

// ValidationResult is the payload returned by Validate.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Issues  []string `json:"issues"`
	Message string   `json:"message"`
}

// Validation messages, in the priority order Validate applies them.
const (
	MessageProbeFailed = "Invalid PlantUML syntax"
	MessageSyntaxError = "PlantUML syntax error detected"
	MessageIssuesFound = "Validation issues found"
	MessageValid       = "PlantUML syntax is valid"
)

// Issues appended by Validate.
const (
	IssueMissingStart = "Missing @start directive"
	IssueMissingEnd   = "Missing @end directive"
	IssueProbeFailed  = "Failed to parse PlantUML"
)

// ReadFailurePrefix starts the error message RenderFromFile reports when the
// input file cannot be read.
const ReadFailurePrefix = "Failed to read file: "

const (
	errTextRequired      = "plantuml_text is required"
	errInputPathRequired = "input_path is required"
)
