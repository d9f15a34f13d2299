package plantuml

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	errorslib "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by CommandRenderer.
const (
	CodeNotFound = "PLANTUML_NOT_FOUND"
	CodeFailed   = "PLANTUML_FAILED"
	CodeTimeout  = "PLANTUML_TIMEOUT"
	CodeCanceled = "PLANTUML_CANCELED"
)

// DefaultCommand is the executable used when CommandRenderer.Command is empty.
const DefaultCommand = "plantuml"

// Renderer turns diagram source into rendered bytes.
//
// Implementations must return only after the complete output is available;
// callers never see a partial stream.
type Renderer interface {
	Render(ctx context.Context, source string, format Format) ([]byte, error)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(ctx context.Context, source string, format Format) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, source string, format Format) ([]byte, error) {
	if f == nil {
		return nil, errors.New("plantuml renderer func is nil")
	}
	return f(ctx, source, format)
}

// CommandRenderer invokes the PlantUML engine as a subprocess.
//
// The zero value runs "plantuml" from PATH with no timeout.
type CommandRenderer struct {
	// Command is the executable to run. Defaults to DefaultCommand.
	Command string

	// Args are placed before the PlantUML switches, e.g. "-jar", "plantuml.jar".
	Args []string

	// Env is appended to the current process environment.
	Env []string

	// Timeout bounds a single invocation. Zero means no bound.
	Timeout time.Duration

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewJarRenderer returns a CommandRenderer that runs a PlantUML jar through java.
func NewJarRenderer(javaCommand, jarPath string) *CommandRenderer {
	if strings.TrimSpace(javaCommand) == "" {
		javaCommand = "java"
	}
	return &CommandRenderer{
		Command: javaCommand,
		Args:    []string{"-Djava.awt.headless=true", "-jar", jarPath},
	}
}

// Render pipes source through PlantUML and returns everything written to stdout.
//
// A non-zero exit status is not an error when the process produced output:
// PlantUML reports syntax problems by rendering an error diagram and exiting
// non-zero, and that diagram is the result callers asked for.
func (r *CommandRenderer) Render(ctx context.Context, source string, format Format) ([]byte, error) {
	args := append(r.baseArgs(), "-pipe", format.Flag(), "-charset", "UTF-8")

	out, exited, err := r.run(ctx, strings.NewReader(source), args)
	if err != nil {
		if exited && len(out) > 0 {
			r.logger().Warn("plantuml exited non-zero with output",
				"format", string(format),
				"bytes", len(out),
				"error", err.Error())
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

// Version returns the first line printed by "plantuml -version".
func (r *CommandRenderer) Version(ctx context.Context) (string, error) {
	out, _, err := r.run(ctx, nil, append(r.baseArgs(), "-version"))
	if err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	return "", errorslib.New("plantuml printed no version", errorslib.CategoryExternal).
		WithTextCode(CodeFailed)
}

func (r *CommandRenderer) command() string {
	if cmd := strings.TrimSpace(r.Command); cmd != "" {
		return cmd
	}
	return DefaultCommand
}

func (r *CommandRenderer) baseArgs() []string {
	return append([]string{}, r.Args...)
}

func (r *CommandRenderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// run executes the command to completion. exited reports whether the process
// ran and returned a non-zero status, in which case out holds whatever it
// wrote before exiting.
func (r *CommandRenderer) run(ctx context.Context, stdin io.Reader, args []string) (out []byte, exited bool, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmdCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	name := r.command()
	cmd := exec.CommandContext(cmdCtx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	r.logger().Debug("plantuml finished",
		"command", name,
		"args", strings.Join(args, " "),
		"duration", time.Since(start),
		"stdout_bytes", stdout.Len())

	if runErr == nil {
		return stdout.Bytes(), false, nil
	}

	if ctx.Err() != nil {
		return nil, false, errorslib.Wrap(ctx.Err(), errorslib.CategoryOperation, "plantuml render canceled").
			WithTextCode(CodeCanceled)
	}
	if r.Timeout > 0 && errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		msg := fmt.Sprintf("plantuml render timed out after %s", r.Timeout)
		return nil, false, errorslib.Wrap(cmdCtx.Err(), errorslib.CategoryOperation, msg).
			WithTextCode(CodeTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		msg := fmt.Sprintf("plantuml exited with status %d", exitErr.ExitCode())
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			msg += ": " + detail
		}
		return stdout.Bytes(), true, errorslib.Wrap(runErr, errorslib.CategoryExternal, msg).
			WithTextCode(CodeFailed)
	}

	msg := fmt.Sprintf("failed to start %s: %v", name, runErr)
	return nil, false, errorslib.Wrap(runErr, errorslib.CategoryExternal, msg).
		WithTextCode(CodeNotFound)
}

// HasErrorMarkers reports whether text rendered by PlantUML contains the
// markers it prints for broken diagrams ("Error" or "Syntax").
func HasErrorMarkers(output []byte) bool {
	return bytes.Contains(output, []byte("Error")) || bytes.Contains(output, []byte("Syntax"))
}
