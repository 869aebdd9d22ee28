// Package javaname classifies Java identifiers, keywords and dotted names.
package javaname

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ErrInvalidIdentifier is the root of every validation failure in this package.
var ErrInvalidIdentifier = errors.New("javaname: invalid identifier")

var keywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {},
	"for": {}, "goto": {}, "if": {}, "implements": {}, "import": {},
	"instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"return": {}, "short": {}, "static": {}, "strictfp": {}, "super": {},
	"switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {},
	"_": {},
	// literals
	"true": {}, "false": {}, "null": {},
}

// IsKeyword reports whether s is reserved (keywords and the literals
// true, false and null).
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsIdentifierStart mirrors Character.isJavaIdentifierStart.
func IsIdentifierStart(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' || r == '$' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Sc, r) || unicode.Is(unicode.Pc, r) || unicode.Is(unicode.Nl, r)
}

// IsIdentifierPart mirrors Character.isJavaIdentifierPart.
func IsIdentifierPart(r rune) bool {
	if r < utf8.RuneSelf {
		return IsIdentifierStart(r) || (r >= '0' && r <= '9')
	}
	return IsIdentifierStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// IsIdentifier reports whether s is a syntactically valid, non-reserved identifier.
func IsIdentifier(s string) bool {
	return CheckIdentifier(s) == nil
}

// CheckIdentifier explains why s is not a valid identifier.
func CheckIdentifier(s string) error {
	if s == "" {
		return errors.Wrap(ErrInvalidIdentifier, "empty name")
	}
	for i, r := range s {
		if i == 0 && !IsIdentifierStart(r) {
			return errors.Wrapf(ErrInvalidIdentifier, "%q cannot start with %q", s, r)
		}
		if !IsIdentifierPart(r) {
			return errors.Wrapf(ErrInvalidIdentifier, "%q contains %q", s, r)
		}
	}
	if IsKeyword(s) {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidIdentifier, "%q is a reserved word", s),
			"append an underscore or pick another name")
	}
	return nil
}

// CheckQualified validates a dotted name such as `java.util.Map.Entry`.
func CheckQualified(s string) error {
	if s == "" {
		return errors.Wrap(ErrInvalidIdentifier, "empty name")
	}
	for part := range strings.SplitSeq(s, ".") {
		if err := CheckIdentifier(part); err != nil {
			return errors.Wrapf(err, "in %q", s)
		}
	}
	return nil
}

// CheckPackage validates a package name. The root package is "".
func CheckPackage(s string) error {
	if s == "" {
		return nil
	}
	return CheckQualified(s)
}

// Capitalize upper-cases the first rune, as used for accessor names.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
