package diag

import "strings"

// Location points at an element of a descriptor file. Path is a dotted
// element path such as "Person.name"; it is empty for file-level findings.
type Location struct {
	File string
	Path string
}

func (l Location) String() string {
	switch {
	case l.File == "":
		return l.Path
	case l.Path == "":
		return l.File
	}
	return l.File + ":" + l.Path
}

// Child extends the element path by one segment.
func (l Location) Child(seg string) Location {
	if l.Path == "" {
		l.Path = seg
		return l
	}
	l.Path = l.Path + "." + seg
	return l
}

type Note struct {
	Loc Location
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
	// Hint suggests how to fix the problem, if anything obvious applies.
	Hint string
}

func New(sev Severity, code Code, primary Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(loc Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Loc: loc, Msg: msg})
	return d
}

func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint
	return d
}

// Error renders the diagnostic on one line so it can travel as an error.
func (d Diagnostic) Error() string {
	var b strings.Builder
	if loc := d.Primary.String(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(d.Code.ID())
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}
