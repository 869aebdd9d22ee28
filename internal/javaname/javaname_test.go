package javaname

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestCheckIdentifier_Positive(t *testing.T) {
	for _, name := range []string{"foo", "Foo1", "_x", "$proxy", "ümlaut", "a_b$c"} {
		if err := CheckIdentifier(name); err != nil {
			t.Fatalf("CheckIdentifier(%q) = %v, want nil", name, err)
		}
	}
}

func TestCheckIdentifier_Negative(t *testing.T) {
	for _, name := range []string{"", "1abc", "a-b", "a.b", "class", "null", "true", "_", "with space"} {
		err := CheckIdentifier(name)
		if err == nil {
			t.Fatalf("CheckIdentifier(%q) = nil, want error", name)
		}
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("CheckIdentifier(%q) = %v, want ErrInvalidIdentifier", name, err)
		}
	}
}

func TestCheckQualified(t *testing.T) {
	if err := CheckQualified("java.util.Map.Entry"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"java..util", "java.util.", ".java", "java.int.Foo"} {
		if CheckQualified(name) == nil {
			t.Fatalf("CheckQualified(%q) = nil, want error", name)
		}
	}
	if CheckPackage("") != nil {
		t.Fatalf("root package must be valid")
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{"name": "Name", "x": "X", "": "", "éclair": "Éclair"}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Fatalf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
