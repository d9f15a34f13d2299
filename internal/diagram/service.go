package diagram

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	errorslib "github.com/goliatone/go-errors"

	"github.com/ironsheep/plantuml-mcp/internal/plantuml"
)

// DirectiveKinds lists the diagram kinds accepted after @start and @end.
var DirectiveKinds = []string{
	"uml", "salt", "wbs", "mindmap", "gantt", "json", "yaml", "creole", "ditaa", "dot",
}

var (
	startDirective = regexp.MustCompile(`(?m)^@start(?:` + strings.Join(DirectiveKinds, "|") + `)`)
	endDirective   = regexp.MustCompile(`(?m)^@end(?:` + strings.Join(DirectiveKinds, "|") + `)`)
)

// Service renders and validates PlantUML diagrams through a Renderer.
//
// Service holds no per-request state and is safe for concurrent use. Every
// failure is reported inside the returned result rather than as a Go error.
type Service struct {
	renderer  plantuml.Renderer
	outputDir string
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for generated file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service writing generated files under outputDir.
//
// The output directory is created (with parents) before NewService returns,
// so the first request never races directory creation.
func NewService(renderer plantuml.Renderer, outputDir string, opts ...Option) (*Service, error) {
	if renderer == nil {
		return nil, errorslib.New("diagram service requires a renderer", errorslib.CategoryInternal).
			WithTextCode("RENDERER_REQUIRED")
	}
	if strings.TrimSpace(outputDir) == "" {
		return nil, errorslib.New("diagram service requires an output directory", errorslib.CategoryValidation).
			WithTextCode("OUTPUT_DIR_REQUIRED")
	}

	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, errorslib.Wrap(err, errorslib.CategoryValidation, "resolve output directory").
			WithTextCode("OUTPUT_DIR_INVALID")
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errorslib.Wrap(err, errorslib.CategoryExternal, "create output directory "+abs).
			WithTextCode("OUTPUT_DIR_CREATE")
	}

	s := &Service{
		renderer:  renderer,
		outputDir: abs,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OutputDir returns the absolute directory used for generated file names.
func (s *Service) OutputDir() string {
	return s.outputDir
}

// Render renders req.Text in req.Format and writes the output to
// req.OutputPath, or to a generated file in the output directory.
//
// Generated names have the form diagram_<md5 of text>_<unix millis>.<format>;
// the timestamp keeps repeated renders of the same text from sharing a file.
// An existing file at the target path is replaced atomically.
func (s *Service) Render(ctx context.Context, req RenderRequest) *RenderResult {
	if req.Text == "" {
		return renderFailure(errTextRequired)
	}
	format, err := plantuml.ParseFormat(req.Format)
	if err != nil {
		return renderFailure(err.Error())
	}

	path := req.OutputPath
	if path == "" {
		path = filepath.Join(s.outputDir, s.fileName(req.Text, format))
	}

	data, err := s.renderer.Render(ctx, req.Text, format)
	if err != nil {
		s.logger.With(errorAttrs(err)...).Warn("render failed", "format", string(format))
		return renderFailure(userMessage(err))
	}

	if err := writeFileAtomic(path, data); err != nil {
		s.logger.With(errorAttrs(err)...).Warn("write failed", "path", path)
		return renderFailure(userMessage(err))
	}

	s.logger.Info("rendered diagram", "path", path, "format", string(format), "bytes", len(data))

	result := &RenderResult{
		Success: true,
		Path:    path,
		Format:  string(format),
		Size:    len(data),
	}
	if format.IsImage() {
		uri := format.DataURI(data)
		result.Base64 = &uri
	}
	return result
}

// RenderFromFile reads diagram source from req.InputPath and renders it.
//
// Read failures are reported as "Failed to read file: <reason>". Without an
// explicit output path the input's extension is replaced by the format's
// (see DeriveOutputPath).
func (s *Service) RenderFromFile(ctx context.Context, req RenderRequest) *RenderResult {
	if req.InputPath == "" {
		return renderFailure(ReadFailurePrefix + errInputPathRequired)
	}

	content, err := os.ReadFile(req.InputPath)
	if err != nil {
		s.logger.Warn("read failed", "path", req.InputPath, "error", err.Error())
		return renderFailure(ReadFailurePrefix + err.Error())
	}

	format, err := plantuml.ParseFormat(req.Format)
	if err != nil {
		return renderFailure(err.Error())
	}

	output := req.OutputPath
	if output == "" {
		output = DeriveOutputPath(req.InputPath, format)
	}

	return s.Render(ctx, RenderRequest{
		Text:       string(content),
		Format:     string(format),
		OutputPath: output,
	})
}

// DeriveOutputPath returns the default output path for rendering inputPath.
//
// The final extension is replaced: "docs/seq.puml" becomes "docs/seq.png".
// A path without an extension, or one that would map onto itself (rendering
// "notes.txt" as txt), gets the format extension appended instead so the
// source file is never overwritten.
func DeriveOutputPath(inputPath string, format plantuml.Format) string {
	out := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + format.Extension()
	if out == inputPath {
		out = inputPath + format.Extension()
	}
	return out
}

// Validate checks text for @start/@end directives and probes it with a txt
// render.
//
// The result is valid only when both directives are present, the probe
// succeeds, and the probe output carries no error markers. Message reports the
// most significant problem: a failed probe, then syntax markers, then missing
// directives.
func (s *Service) Validate(ctx context.Context, text string) *ValidationResult {
	issues := []string{}
	if !startDirective.MatchString(text) {
		issues = append(issues, IssueMissingStart)
	}
	if !endDirective.MatchString(text) {
		issues = append(issues, IssueMissingEnd)
	}

	out, err := s.renderer.Render(ctx, text, plantuml.FormatTXT)
	if err != nil {
		s.logger.Debug("validation probe failed", "error", err.Error())
		return &ValidationResult{
			Valid:   false,
			Issues:  append(issues, IssueProbeFailed),
			Message: MessageProbeFailed,
		}
	}

	hasError := plantuml.HasErrorMarkers(out)
	result := &ValidationResult{
		Valid:  !hasError && len(issues) == 0,
		Issues: issues,
	}
	switch {
	case hasError:
		result.Message = MessageSyntaxError
	case len(issues) > 0:
		result.Message = MessageIssuesFound
	default:
		result.Message = MessageValid
	}
	return result
}

func (s *Service) fileName(text string, format plantuml.Format) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf("diagram_%s_%d%s", hex.EncodeToString(sum[:]), s.now().UnixMilli(), format.Extension())
}
