// Package plantuml runs the external PlantUML engine as a subprocess.
//
// PlantUML is treated as an opaque renderer: diagram source goes in on stdin,
// rendered bytes come out on stdout. This package never parses diagram markup
// itself; it only builds the command line, collects the output stream, and
// classifies failures.
//
// # Command Line
//
// Every render runs the engine in pipe mode:
//
//	plantuml -pipe -tpng -charset UTF-8
//
// or, when a jar is configured:
//
//	java -jar /path/to/plantuml.jar -pipe -tpng -charset UTF-8
//
// # Exit Status
//
// PlantUML exits with a non-zero status when the diagram contains a syntax
// error, but it still writes an error diagram to stdout. Output produced on
// stdout is therefore returned even when the process exits non-zero. Only a
// process that cannot start, or that fails without producing any output, is
// reported as an error.
//
// # Errors
//
// Errors returned by [CommandRenderer] are *errors.Error values from
// github.com/goliatone/go-errors with one of the text codes:
//   - PLANTUML_NOT_FOUND: the configured command could not be started
//   - PLANTUML_FAILED: the process failed without producing output
//   - PLANTUML_TIMEOUT: the configured timeout elapsed
package plantuml
