package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ironsheep/plantuml-mcp/internal/diagram"
	"github.com/ironsheep/plantuml-mcp/internal/imaging"
	"github.com/ironsheep/plantuml-mcp/internal/ocr"
)

// Name is the implementation name reported to MCP clients.
const Name = "plantuml-server"

// DefaultVersion is reported when Options.Version is empty.
const DefaultVersion = "1.0.0"

// ErrUnknownTool is returned for tool names the server does not expose.
var ErrUnknownTool = errors.New("unknown tool")

// Options configures a Server.
type Options struct {
	// Version is the implementation version reported during initialize.
	Version string

	// Logger receives tool call diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// OCRLanguage is the Tesseract language inspect_diagram uses when the
	// call does not name one.
	OCRLanguage string
}

// Server exposes the diagram tools over MCP.
type Server struct {
	mcp         *mcp.Server
	diagrams    *diagram.Service
	cache       *imaging.ImageCache
	logger      *slog.Logger
	ocrLanguage string
	version     string
}

// New creates a server around svc and registers every tool returned by
// GetToolDefinitions.
func New(svc *diagram.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.OCRLanguage == "" {
		opts.OCRLanguage = ocr.DefaultLanguage
	}

	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: opts.Version,
		}, nil),
		diagrams:    svc,
		cache:       imaging.NewImageCache(),
		logger:      opts.Logger,
		ocrLanguage: opts.OCRLanguage,
		version:     opts.Version,
	}

	for _, tool := range GetToolDefinitions() {
		s.mcp.AddTool(&mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		}, s.toolHandler(tool.Name))
	}
	return s
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", "output_dir", s.diagrams.OutputDir())
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP surface: the streamable MCP endpoint at /mcp and
// a liveness probe at /healthz.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)

	r.Get("/healthz", s.handleHealth)
	return r
}

// ListenAndServe serves Handler on addr and shuts down gracefully when ctx
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over HTTP", "addr", addr, "output_dir", s.diagrams.OutputDir())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}

// CallTool invokes a tool directly, without an MCP session. args is
// marshaled to JSON and must match the tool's input schema.
//
// Returns an error wrapping ErrUnknownTool if name is not a registered tool.
func (s *Server) CallTool(ctx context.Context, name string, args any) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if args != nil {
		var err error
		raw, err = json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("marshaling tool arguments: %w", err)
		}
	}

	result, err := s.executeTool(ctx, name, raw)
	if err != nil {
		return nil, err
	}
	return textResult(result), nil
}

// toolHandler adapts executeTool to the SDK's low-level handler signature.
func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}

		start := time.Now()
		result, err := s.executeTool(ctx, name, args)
		if err != nil {
			s.logger.Warn("tool call failed", "tool", name, "error", err)
			return nil, err
		}
		s.logger.Debug("tool call", "tool", name, "duration", time.Since(start))
		return textResult(result), nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":     "ok",
		"name":       Name,
		"version":    s.version,
		"output_dir": s.diagrams.OutputDir(),
	})
}

// textResult wraps a tool payload as a single pretty-printed text content.
func textResult(v interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: mustMarshalJSON(v)},
		},
	}
}
