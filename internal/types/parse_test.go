package types

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestParseTypeForms(t *testing.T) {
	in := NewInterner()
	cases := []struct{ text, want string }{
		{"int", "int"},
		{"int[][]", "int[][]"},
		{"String", "java.lang.String"},
		{"java.util.List<String>", "java.util.List<java.lang.String>"},
		{"java.util.Map<String, java.util.List<Integer>>", "java.util.Map<java.lang.String,java.util.List<java.lang.Integer>>"},
		{"java.util.List<? extends Number>", "java.util.List<? extends java.lang.Number>"},
		{"java.util.List<? super Integer>[]", "java.util.List<? super java.lang.Integer>[]"},
		{"java.util.List<?>", "java.util.List<?>"},
		{"java.util.List<int[]>", "java.util.List<int[]>"},
		{"? extends java.lang.Number", "? extends java.lang.Number"},
		{"com.acme.Thing", "com.acme.Thing"},
	}
	for _, tc := range cases {
		id, err := in.ParseType(tc.text)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tc.text, err)
		}
		if got := in.FullName(id); got != tc.want {
			t.Fatalf("ParseType(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	in := NewInterner()
	cases := []struct{ text, want string }{
		{"java.util.List<String", "missing '>'"},
		{"int[", "expected ']'"},
		{"java.util.List<String>>", "unexpected '>'"},
		{"java.util.List<int>", "cannot be a type argument"},
		{"java.util.List<String;>", "unexpected ';'"},
		{"", "expected identifier"},
		{"java..util.List", "expected identifier"},
		{"? foo Bar", "expected 'extends' or 'super'"},
		{"int<String>", "primitive cannot take type arguments"},
		{"void[]", "void cannot be an array component"},
		{"java.util.List<String> x", "unexpected 'x'"},
	}
	for _, tc := range cases {
		text, want := tc.text, tc.want
		_, err := in.ParseType(text)
		if err == nil {
			t.Fatalf("ParseType(%q) succeeded, want error containing %q", text, want)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("ParseType(%q) error %T is not a ParseError", text, err)
		}
		if !strings.Contains(perr.Msg, want) {
			t.Fatalf("ParseType(%q) = %q, want it to contain %q", text, perr.Msg, want)
		}
	}
}

func TestParseErrorOffset(t *testing.T) {
	in := NewInterner()
	_, err := in.ParseType("java.util.List<String")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if perr.Offset != len("java.util.List<String") {
		t.Fatalf("offset = %d", perr.Offset)
	}
	if details := errors.GetAllDetails(err); len(details) == 0 || !strings.Contains(details[0], "^") {
		t.Fatalf("expected caret detail, got %v", details)
	}
}

func TestParserLookupHook(t *testing.T) {
	in := NewInterner()
	widget, err := in.DefineClass(ClassSpec{Name: "Widget", Package: "com.acme"})
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	tv := in.NewTypeVar("T", NoTypeID)
	p := Parser{Types: in, Lookup: func(name string) (TypeID, bool) {
		switch name {
		case "Widget":
			return widget, true
		case "T":
			return tv, true
		}
		return NoTypeID, false
	}}
	id, err := p.Parse("java.util.Map<T, Widget[]>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := in.FullName(id); got != "java.util.Map<T,com.acme.Widget[]>" {
		t.Fatalf("parsed = %q", got)
	}
}
