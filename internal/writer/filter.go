package writer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// PrologWriter prepends a `//` comment block to every source file of inner.
type PrologWriter struct {
	inner  CodeWriter
	prolog string
}

// NewPrologWriter decorates inner. Each line of prolog becomes one `// `
// comment line; an empty prolog adds nothing.
func NewPrologWriter(inner CodeWriter, prolog string) *PrologWriter {
	return &PrologWriter{inner: inner, prolog: prolog}
}

// Prolog renders the comment block written at the top of each file.
func Prolog(text string) string {
	if text == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("//\n")
	for line := range strings.SplitSeq(strings.TrimRight(text, "\n"), "\n") {
		sb.WriteString(strings.TrimRight("// "+line, " "))
		sb.WriteByte('\n')
	}
	sb.WriteString("//\n\n")
	return sb.String()
}

func (w *PrologWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	out, err := w.inner.Open(pkg, fileName)
	if err != nil || w.prolog == "" || !IsSource(fileName) {
		return out, err
	}
	if _, err := io.WriteString(out, Prolog(w.prolog)); err != nil {
		return nil, errors.CombineErrors(errors.Wrap(err, "writer: prolog"), out.Close())
	}
	return out, nil
}

func (w *PrologWriter) Close() error { return w.inner.Close() }

// ProgressWriter prints the path of every opened file to progress.
type ProgressWriter struct {
	inner    CodeWriter
	progress io.Writer
	mu       sync.Mutex
}

func NewProgressWriter(inner CodeWriter, progress io.Writer) *ProgressWriter {
	return &ProgressWriter{inner: inner, progress: progress}
}

func (w *ProgressWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	w.mu.Lock()
	fmt.Fprintln(w.progress, Path(pkg, fileName))
	w.mu.Unlock()
	return w.inner.Open(pkg, fileName)
}

func (w *ProgressWriter) Close() error { return w.inner.Close() }
