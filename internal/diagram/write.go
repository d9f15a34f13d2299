package diagram

import (
	"fmt"
	"os"
	"path/filepath"

	errorslib "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// writeFileAtomic writes data to a temporary sibling of path and renames it
// into place, so readers see either the old file or the complete new one.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return errorslib.Wrap(err, errorslib.CategoryExternal, fmt.Sprintf("failed to write %s: %v", path, pathCause(err))).
			WithTextCode("OUTPUT_WRITE")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errorslib.Wrap(err, errorslib.CategoryExternal, fmt.Sprintf("failed to replace %s: %v", path, pathCause(err))).
			WithTextCode("OUTPUT_WRITE")
	}
	return nil
}
