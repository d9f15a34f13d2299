package diagram

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	errorslib "github.com/goliatone/go-errors"
)

// userMessage is the text a failed RenderResult carries for err. Categorized
// errors report their message alone; the category, text code and wrapped
// source stay in the log line.
func userMessage(err error) string {
	var ge *errorslib.Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return err.Error()
}

// errorAttrs describes err for a log line, including its category and text
// code when it has them.
func errorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	var ge *errorslib.Error
	if errors.As(err, &ge) {
		attrs = append(attrs, slog.String("category", string(ge.Category)))
		if ge.TextCode != "" {
			attrs = append(attrs, slog.String("code", ge.TextCode))
		}
	}
	return attrs
}

// pathCause drops the path from a filesystem error, leaving the reason.
func pathCause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
