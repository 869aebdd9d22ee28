package writer

import (
	"io"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zip"
)

// ZipWriter packs all files into one zip archive. Entries are deflated and
// written on Close in path order with a fixed timestamp, so the same model
// always yields the same archive.
type ZipWriter struct {
	out      io.Writer
	modified time.Time

	mu      sync.Mutex
	pending map[string][]byte
}

// NewZipWriter writes the archive to out. out is closed with the writer
// unless it is stdout or stderr.
func NewZipWriter(out io.Writer) *ZipWriter {
	return &ZipWriter{
		out:      out,
		modified: time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
		pending:  make(map[string][]byte),
	}
}

func (w *ZipWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
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

func (w *ZipWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	zw := zip.NewWriter(w.out)
	var err error
	for _, p := range slices.Sorted(maps.Keys(w.pending)) {
		var entry io.Writer
		entry, err = zw.CreateHeader(&zip.FileHeader{Name: p, Method: zip.Deflate, Modified: w.modified})
		if err != nil {
			break
		}
		if _, err = entry.Write(w.pending[p]); err != nil {
			break
		}
	}
	w.pending = make(map[string][]byte)
	err = errors.CombineErrors(errors.Wrap(err, "writer: zip"), errors.Wrap(zw.Close(), "writer: zip"))
	if c, ok := w.out.(io.Closer); ok && !isStdStream(w.out) {
		err = errors.CombineErrors(err, errors.Wrap(c.Close(), "writer: zip"))
	}
	return err
}
