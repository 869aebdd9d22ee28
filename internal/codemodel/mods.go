package codemodel

import (
	"strings"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
)

// Mods is a set of Java modifiers.
type Mods uint16

const (
	ModPublic Mods = 1 << iota
	ModProtected
	ModPrivate
	ModAbstract
	ModStatic
	ModFinal
	ModTransient
	ModVolatile
	ModSynchronized
	ModNative
	ModStrictfp
	ModDefault
)

// ModNone is the empty set.
const ModNone Mods = 0

const modAccess = ModPublic | ModProtected | ModPrivate

// keywords in declaration order
var modKeywords = [...]struct {
	mod  Mods
	word string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModDefault, "default"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
	{ModStrictfp, "strictfp"},
}

// Has reports whether every modifier of o is set.
func (m Mods) Has(o Mods) bool { return m&o == o }

func (m Mods) String() string {
	words := make([]string, 0, 4)
	for _, k := range modKeywords {
		if m&k.mod != 0 {
			words = append(words, k.word)
		}
	}
	return strings.Join(words, " ")
}

// Generate prints the keywords in canonical order.
func (m Mods) Generate(f format.Formatter) {
	for _, k := range modKeywords {
		if m&k.mod != 0 {
			f.Print(k.word)
		}
	}
}

type modTarget uint8

const (
	targetClass modTarget = iota
	targetNested
	targetField
	targetMethod
	targetConstructor
	targetLocal
)

var allowedMods = [...]Mods{
	targetClass:       ModPublic | ModAbstract | ModFinal | ModStrictfp,
	targetNested:      modAccess | ModAbstract | ModStatic | ModFinal | ModStrictfp,
	targetField:       modAccess | ModStatic | ModFinal | ModTransient | ModVolatile,
	targetMethod:      modAccess | ModAbstract | ModStatic | ModFinal | ModSynchronized | ModNative | ModStrictfp | ModDefault,
	targetConstructor: modAccess,
	targetLocal:       ModFinal,
}

var targetNames = [...]string{
	targetClass:       "top-level class",
	targetNested:      "nested class",
	targetField:       "field",
	targetMethod:      "method",
	targetConstructor: "constructor",
	targetLocal:       "local variable",
}

func (m Mods) check(target modTarget, what string) error {
	fail := func(reason string) error {
		return errors.WithDetailf(
			errors.Wrapf(ErrInvalidModifiers, "%q on %s %s", m.String(), targetNames[target], what),
			"%s", reason)
	}
	if extra := m &^ allowedMods[target]; extra != 0 {
		return fail("not allowed here: " + extra.String())
	}
	if access := m & modAccess; access&(access-1) != 0 {
		return fail("at most one access modifier")
	}
	if m.Has(ModAbstract) {
		if bad := m & (ModFinal | ModPrivate | ModStatic | ModSynchronized | ModNative); bad != 0 {
			return fail("abstract excludes " + bad.String())
		}
	}
	if m.Has(ModFinal | ModVolatile) {
		return fail("a field cannot be both final and volatile")
	}
	return nil
}
