package format

import (
	"unicode"
	"unicode/utf8"

	"jcodemodel/internal/javaname"
)

// Writer accumulates printed output. It inserts a separating space between
// tokens where Java needs one and indents each physical line once, at its
// first emission.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
	last        rune
}

// NewWriter creates a new formatting writer.
func NewWriter(opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		buf:         make([]byte, 0, 4096),
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	for range w.indentLevel {
		w.buf = append(w.buf, w.opt.Indent...)
	}
	w.atLineStart = false
}

func (w *Writer) spaceIfNeeded(next rune) {
	if w.atLineStart {
		w.writeIndent()
		return
	}
	if w.last != 0 && needSpace(w.last, next) {
		w.buf = append(w.buf, ' ')
	}
}

// WriteString writes a token.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	first, _ := utf8.DecodeRuneInString(s)
	w.spaceIfNeeded(first)
	w.buf = append(w.buf, s...)
	w.last, _ = utf8.DecodeLastRuneInString(s)
}

// WriteRune writes a single character. CloseTypeArgs is written as '>'
// without any spacing.
func (w *Writer) WriteRune(r rune) {
	if r == CloseTypeArgs {
		w.buf = append(w.buf, '>')
		w.last = r
		return
	}
	w.spaceIfNeeded(r)
	w.buf = utf8.AppendRune(w.buf, r)
	w.last = r
}

// WriteRaw writes s verbatim. It is indented when it starts a line.
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	if w.atLineStart {
		w.writeIndent()
	}
	w.buf = append(w.buf, s...)
	w.last, _ = utf8.DecodeLastRuneInString(s)
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.buf = append(w.buf, w.opt.Newline...)
	w.last = 0
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// needSpace decides whether c2 may follow c1 without a separating space.
func needSpace(c1, c2 rune) bool {
	if c1 == ' ' {
		return false
	}
	if c1 == ']' && c2 == '{' {
		return true
	}
	if c1 == ';' {
		return true
	}
	if c1 == CloseTypeArgs {
		// "List<String> list" but "new ArrayList<String>()" and "List<String>[]"
		switch c2 {
		case '(', ')', '[', ']', ',', ';', '.', '>':
			return false
		}
		return true
	}
	if c1 == ')' && c2 == '{' {
		return true
	}
	if c1 == ',' || c1 == '=' {
		return true
	}
	if c2 == '=' {
		return true
	}
	if (c1 == '-' || c1 == '+') && c2 == c1 {
		return true
	}
	if unicode.IsDigit(c1) {
		switch c2 {
		case '(', ')', '[', ']', '<', ';', ',', '}':
			return false
		}
		return true
	}
	if javaname.IsIdentifierPart(c1) {
		switch c2 {
		case '{', '+', '-', '>', '@':
			return true
		}
		return javaname.IsIdentifierStart(c2)
	}
	if javaname.IsIdentifierStart(c2) {
		switch c1 {
		case ']', ')', '}', '+':
			return true
		}
		return false
	}
	if unicode.IsDigit(c2) {
		switch c1 {
		case '(', '{', '[', '-', '!', '~':
			return false
		}
		return true
	}
	return false
}
