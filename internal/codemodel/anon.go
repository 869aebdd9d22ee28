package codemodel

import (
	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/types"
)

// AnonymousClass starts the body of `new base(...) { ... }`. Fields,
// methods and initializers are declared on the returned class as usual; it
// is printed through NewAnonymous and never becomes a compilation unit.
// The class has no type handle of its own, so import resolution sees only
// base.
func (m *Model) AnonymousClass(base types.TypeID) *DefinedClass {
	return &DefinedClass{
		model:     m,
		id:        base,
		name:      m.in.Name(base),
		kind:      types.ClassKindClass,
		anonymous: true,
	}
}

// IsAnonymous reports whether c was created by AnonymousClass.
func (c *DefinedClass) IsAnonymous() bool { return c.anonymous }

// Base returns the class or interface an anonymous class extends, or the
// class itself for named classes.
func (c *DefinedClass) Base() types.TypeID { return c.id }

func (c *DefinedClass) named(op string) error {
	if !c.anonymous {
		return nil
	}
	return errors.Wrapf(ErrWrongKind, "%s on anonymous %s", op, c.FullName())
}

// NewAnonymous returns `new Base(args) { body }` for an anonymous class.
func NewAnonymous(c *DefinedClass) *Invocation {
	return &Invocation{typ: c.id, isNew: true, anon: c}
}

func (c *DefinedClass) generateAnonymousBody(f format.Formatter) {
	f.PrintRune('{')
	f.Newline()
	f.Indent()
	c.declareBody(f)
	f.Outdent()
	f.PrintRune('}')
}
