package driver

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/writer"
)

// changedFiles compares the rendered units against the files under outDir
// and returns the units that are missing or differ there.
func changedFiles(mem *writer.MemoryWriter, outDir string) ([]string, error) {
	var changed []string
	for _, p := range mem.Files() {
		want, _ := mem.File(p)
		got, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(p)))
		switch {
		case errors.Is(err, os.ErrNotExist):
			changed = append(changed, p)
		case err != nil:
			return nil, errors.Wrapf(err, "check %s", p)
		case !bytes.Equal(got, want):
			changed = append(changed, p)
		}
	}
	return changed, nil
}
