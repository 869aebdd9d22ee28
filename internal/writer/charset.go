package writer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedCharset is returned for charset names with no encoder.
var ErrUnsupportedCharset = errors.New("writer: unsupported charset")

// Charset resolves an IANA charset name such as UTF-8 or ISO-8859-1.
func Charset(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnsupportedCharset, "%q", name),
			"use an IANA name, e.g. UTF-8, ISO-8859-1 or windows-1252")
	}
	return enc, nil
}

// EncodingWriter transcodes every source file of inner from UTF-8 to a target
// charset. Characters the charset cannot represent, and control characters
// other than tab, CR and LF, are written as Java \uXXXX escapes.
type EncodingWriter struct {
	inner CodeWriter
	enc   encoding.Encoding
	utf8  bool
}

func NewEncodingWriter(inner CodeWriter, charset string) (*EncodingWriter, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	return &EncodingWriter{inner: inner, enc: enc, utf8: enc == unicode.UTF8}, nil
}

func (w *EncodingWriter) Open(pkg, fileName string) (io.WriteCloser, error) {
	out, err := w.inner.Open(pkg, fileName)
	if err != nil || !IsSource(fileName) {
		return out, err
	}
	return &buffer{done: func(b []byte) error {
		encoded, err := w.Encode(string(b))
		if err == nil {
			_, err = out.Write(encoded)
		}
		return errors.CombineErrors(errors.Wrapf(err, "writer: encode %s", Path(pkg, fileName)), out.Close())
	}}, nil
}

func (w *EncodingWriter) Close() error { return w.inner.Close() }

// Encode normalizes src to NFC, escapes what the charset cannot hold and
// encodes the rest.
func (w *EncodingWriter) Encode(src string) ([]byte, error) {
	escaped := escapeUnencodable(norm.NFC.String(src), w.canEncode)
	if w.utf8 {
		return []byte(escaped), nil
	}
	return w.enc.NewEncoder().Bytes([]byte(escaped))
}

func (w *EncodingWriter) canEncode(r rune) bool {
	if w.utf8 {
		return true
	}
	_, err := w.enc.NewEncoder().String(string(r))
	return err == nil
}

func escapeUnencodable(s string, canEncode func(rune) bool) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			fmt.Fprintf(&sb, `\u%04x`, r)
		case r < 0x80 || canEncode(r):
			sb.WriteRune(r)
		default:
			for _, unit := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&sb, `\u%04x`, unit)
			}
		}
	}
	return sb.String()
}
