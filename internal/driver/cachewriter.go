package driver

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/project"
	"jcodemodel/internal/writer"
)

// cachingWriter skips units whose rendered content matches what the
// previous run wrote, as long as the file is still on disk.
type cachingWriter struct {
	inner writer.CodeWriter
	root  string
	prev  map[string]project.Digest

	mu      sync.Mutex
	next    map[string]project.Digest
	skipped []string
}

func newCachingWriter(inner writer.CodeWriter, root string, prev *DiskPayload) *cachingWriter {
	w := &cachingWriter{
		inner: inner,
		root:  root,
		next:  make(map[string]project.Digest),
	}
	if prev != nil {
		w.prev = prev.Files
	}
	return w
}

func (w *cachingWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	p := writer.Path(pkg, fileName)
	return writer.Buffered(func(content []byte) error {
		sum := project.Sum(content)
		if old, ok := w.prev[p]; ok && old == sum && w.onDisk(p) {
			w.mu.Lock()
			w.next[p] = sum
			w.skipped = append(w.skipped, p)
			w.mu.Unlock()
			return nil
		}
		out, err := w.inner.Open(pkg, fileName)
		if err != nil {
			return err
		}
		_, err = out.Write(content)
		if err = errors.CombineErrors(err, out.Close()); err != nil {
			return err
		}
		w.mu.Lock()
		w.next[p] = sum
		w.mu.Unlock()
		return nil
	}), nil
}

func (w *cachingWriter) onDisk(p string) bool {
	info, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(p)))
	return err == nil && info.Mode().IsRegular()
}

func (w *cachingWriter) Close() error { return w.inner.Close() }

// Skipped returns the units left untouched, sorted.
func (w *cachingWriter) Skipped() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := slices.Clone(w.skipped)
	slices.Sort(out)
	return out
}

// Files returns the digests to remember for the next run.
func (w *cachingWriter) Files() map[string]project.Digest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.next)
}
