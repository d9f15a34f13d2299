// Package server implements the MCP (Model Context Protocol) server for PlantUML tools.
//
// The server is built on the official Go SDK (modelcontextprotocol/go-sdk). It
// registers its tools with the low-level AddTool API using hand-written JSON
// schemas from GetToolDefinitions, and routes every call through one
// dispatcher so the MCP transports and library-mode CallTool behave the same.
//
// # Transports
//
// Run serves over stdio: JSON-RPC requests on stdin, responses on stdout.
// Logs must therefore go to stderr.
//
// Handler and ListenAndServe expose the same server over streamable HTTP:
//   - /mcp: MCP streamable HTTP endpoint
//   - /healthz: JSON liveness probe with the version and output directory
//
// # Available Tools
//
//   - render_plantuml: Render PlantUML text to png, svg or txt
//   - render_plantuml_from_file: Render a .puml file, output next to it by default
//   - validate_plantuml: Structural and syntax check without writing a file
//   - inspect_diagram: Dimensions, palette, preview and OCR text of a rendered diagram
//
// # Results
//
// Every tool returns exactly one text content item holding pretty-printed
// JSON. Rendering, filesystem and argument problems are reported inside that
// JSON ({"success": false, "error": ...} or {"valid": false, ...}); they are
// never protocol errors. Calling a tool that does not exist is the only
// hard failure and wraps ErrUnknownTool.
//
// # Image Caching
//
// inspect_diagram decodes images through an in-memory cache keyed by the
// absolute path. Entries are reloaded when the file's size or modification
// time changes, and a successful render evicts its output path.
//
// # Usage
//
//	svc, err := diagram.NewService(renderer, outputDir)
//	if err != nil {
//	    return err
//	}
//	srv := server.New(svc, server.Options{Logger: logger})
//	return srv.Run(ctx)
package server
