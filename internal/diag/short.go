package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatShort renders one line per diagnostic, sorted by location, in the
// form "severity CODE file:path message". Notes follow their diagnostic
// when includeNotes is set.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	type line struct {
		sev  Severity
		code string
		loc  Location
		msg  string
		note bool
	}
	sorted := make([]Diagnostic, len(diags))
	for i, d := range diags {
		d.Primary.File = normalizePath(d.Primary.File)
		sorted[i] = d
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i], sorted[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Path != dj.Primary.Path {
			return di.Primary.Path < dj.Primary.Path
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var lines []line
	for _, d := range sorted {
		lines = append(lines, line{sev: d.Severity, code: d.Code.ID(), loc: d.Primary, msg: d.Message})
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, line{code: d.Code.ID(), loc: n.Loc, msg: n.Msg, note: true})
		}
	}

	var b strings.Builder
	for i, l := range lines {
		label := l.sev.Label()
		if l.note {
			label = "note"
		}
		l.loc.File = normalizePath(l.loc.File)
		fmt.Fprintf(&b, "%s %s %s %s", label, l.code, l.loc, sanitizeMessage(l.msg))
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
