// Package writer stores generated compilation units: in a directory tree, in
// memory, or concatenated into one stream. Decorators add a comment prolog,
// progress reporting and charset transcoding.
package writer

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// CodeWriter receives the files of one generation run. Open may be called
// from several goroutines; each returned writer is used by one goroutine.
type CodeWriter interface {
	// Open creates fileName inside Java package pkg ("" for the root package).
	Open(pkg, fileName string) (io.WriteCloser, error)
	// Close finishes the run.
	Close() error
}

// Path returns the slash-separated path of a file in a package, e.g.
// com/acme/Foo.java.
func Path(pkg, fileName string) string {
	if pkg == "" {
		return fileName
	}
	return path.Join(strings.ReplaceAll(pkg, ".", "/"), fileName)
}

// IsSource reports whether fileName is a Java compilation unit. Decorators
// that rewrite text leave other package files untouched.
func IsSource(fileName string) bool { return strings.HasSuffix(fileName, ".java") }

// DirWriter writes files below a root directory, one directory per package.
type DirWriter struct {
	root     string
	readOnly bool

	mu      sync.Mutex
	written []string
}

// DirOption configures a DirWriter.
type DirOption func(*DirWriter)

// ReadOnly marks every written file read-only when the writer is closed.
func ReadOnly() DirOption {
	return func(w *DirWriter) { w.readOnly = true }
}

// NewDirWriter writes below root, which must be an existing directory.
func NewDirWriter(root string, opts ...DirOption) (*DirWriter, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "writer: output directory")
	}
	if !info.IsDir() {
		return nil, errors.Newf("writer: %s: not a directory", root)
	}
	w := &DirWriter{root: root}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Root returns the output directory.
func (w *DirWriter) Root() string { return w.root }

// File returns the OS path a package file is written to.
func (w *DirWriter) File(pkg, fileName string) string {
	return filepath.Join(w.root, filepath.FromSlash(Path(pkg, fileName)))
}

func (w *DirWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	target := w.File(pkg, fileName)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return nil, errors.Wrap(err, "writer: create package directory")
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "writer: %s: cannot delete previous version", target)
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "writer: open")
	}
	w.mu.Lock()
	w.written = append(w.written, target)
	w.mu.Unlock()
	return f, nil
}

// Written returns the OS paths opened so far, sorted.
func (w *DirWriter) Written() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := slices.Clone(w.written)
	slices.Sort(out)
	return out
}

func (w *DirWriter) Close() error {
	if !w.readOnly {
		return nil
	}
	var errs error
	for _, f := range w.Written() {
		errs = errors.CombineErrors(errs, errors.Wrap(os.Chmod(f, 0o444), "writer: mark read-only"))
	}
	return errs
}

// buffer collects one file and hands its content to done on Close.
type buffer struct {
	bytes.Buffer
	done   func([]byte) error
	closed bool
}

func (b *buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.done(b.Bytes())
}

// Buffered returns a writer that collects its content and hands it to done
// on the first Close.
func Buffered(done func([]byte) error) io.WriteCloser {
	return &buffer{done: done}
}
