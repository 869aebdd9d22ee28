package writer

import (
	"io"
	"maps"
	"slices"
	"sync"
)

// MemoryWriter keeps every file in memory, keyed by Path.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: make(map[string][]byte)}
}

func (w *MemoryWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	p := Path(pkg, fileName)
	return &buffer{done: func(b []byte) error {
		w.mu.Lock()
		w.files[p] = slices.Clone(b)
		w.mu.Unlock()
		return nil
	}}, nil
}

func (w *MemoryWriter) Close() error { return nil }

// Files returns the stored paths, sorted.
func (w *MemoryWriter) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.files))
}

// File returns the content stored under p.
func (w *MemoryWriter) File(p string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.files[p]
	return b, ok
}
