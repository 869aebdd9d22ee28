package writer

import (
	"bytes"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

const bannerDashes = "-----------------------------------"

// StreamWriter concatenates all files into one stream, each preceded by a
// banner line naming its path. Files are written on Close, ordered by path,
// so concurrent emission still yields a stable stream.
type StreamWriter struct {
	out     io.Writer
	newline string

	mu      sync.Mutex
	pending map[string][]byte
}

// NewStreamWriter writes to out. out is closed with the writer unless it is
// stdout or stderr.
func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{out: out, newline: "\n", pending: make(map[string][]byte)}
}

// Banner returns the separator line written before the file at p.
func Banner(p string) string { return bannerDashes + p + bannerDashes }

func (w *StreamWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	p := Path(pkg, fileName)
	return &buffer{done: func(b []byte) error {
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, dup := w.pending[p]; dup {
			return errors.Newf("writer: %s written twice", p)
		}
		w.pending[p] = slices.Clone(b)
		return nil
	}}, nil
}

func (w *StreamWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out bytes.Buffer
	for _, p := range slices.Sorted(maps.Keys(w.pending)) {
		out.WriteString(Banner(p))
		out.WriteString(w.newline)
		out.Write(w.pending[p])
	}
	w.pending = make(map[string][]byte)
	_, err := w.out.Write(out.Bytes())
	err = errors.Wrap(err, "writer: stream")
	if c, ok := w.out.(io.Closer); ok && !isStdStream(w.out) {
		err = errors.CombineErrors(err, c.Close())
	}
	return err
}

func isStdStream(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr)
}
