package diagfmt

import (
	"os"
	"path/filepath"
)

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	case PathModeRelative:
		if base == "" {
			base, _ = os.Getwd()
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			break
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			path = rel
		}
	case PathModeBasename:
		path = filepath.Base(path)
	default:
		path = filepath.Clean(path)
	}
	return filepath.ToSlash(path)
}
