package codemodel

import (
	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/javaname"
	"jcodemodel/internal/types"
)

// DefinedClass is a class, interface, enum or annotation type whose source
// the model generates.
type DefinedClass struct {
	annotations
	documented
	model *Model
	pkg   *Package
	outer *DefinedClass
	id    types.TypeID
	name  string
	kind  types.ClassKind
	mods  Mods

	fields     []*FieldVar
	ctors      []*Method
	methods    []*Method
	constants  []*EnumConstant
	nested     []*DefinedClass
	staticInit *Block
	init       *Block
	direct     string
	header     *DocComment
	hidden     bool
	anonymous  bool
}

func (c *DefinedClass) ID() types.TypeID      { return c.id }
func (c *DefinedClass) Name() string          { return c.name }
func (c *DefinedClass) FullName() string      { return c.model.in.FullName(c.id) }
func (c *DefinedClass) Kind() types.ClassKind { return c.kind }
func (c *DefinedClass) Mods() Mods            { return c.mods }
func (c *DefinedClass) Package() *Package     { return c.pkg }
func (c *DefinedClass) Model() *Model         { return c.model }

// Outer returns the enclosing class of a nested class.
func (c *DefinedClass) Outer() (*DefinedClass, bool) { return c.outer, c.outer != nil }

// Hide keeps the class in the model (it can still be referenced) but
// excludes it from emission.
func (c *DefinedClass) Hide()          { c.hidden = true }
func (c *DefinedClass) IsHidden() bool { return c.hidden }

// Direct appends verbatim source to the end of the class body.
func (c *DefinedClass) Direct(text string) { c.direct += text }

// HeaderComment returns the comment printed above the package statement of
// a top-level class, creating it on first use.
func (c *DefinedClass) HeaderComment() *DocComment {
	if c.header == nil {
		c.header = &DocComment{}
	}
	return c.header
}

// Generify declares a class type parameter; a NoTypeID bound means Object.
func (c *DefinedClass) Generify(name string, bound types.TypeID) (types.TypeID, error) {
	if err := c.named("type parameter"); err != nil {
		return types.NoTypeID, err
	}
	tv, err := c.model.in.AddTypeParam(c.id, name, bound)
	return tv, errors.Wrapf(err, "codemodel: generify %s", c.FullName())
}

// TypeParams returns the class type parameters.
func (c *DefinedClass) TypeParams() []types.TypeID { return c.model.in.TypeParams(c.id) }

// Extends sets the superclass.
func (c *DefinedClass) Extends(super types.TypeID) error {
	if err := c.named("extends"); err != nil {
		return err
	}
	if c.kind != types.ClassKindClass {
		return errors.WithHint(
			errors.Wrapf(ErrWrongKind, "%s %s cannot extend a class", c.kind, c.FullName()),
			"interfaces extend other interfaces through Implements")
	}
	in := c.model.in
	if in.IsInterface(super) {
		return errors.Newf("codemodel: %s cannot extend interface %s", c.FullName(), in.FullName(super))
	}
	return errors.Wrap(in.SetSuper(c.id, super), "codemodel: extends")
}

// Super returns the superclass.
func (c *DefinedClass) Super() types.TypeID {
	s, _ := c.model.in.Super(c.id)
	return s
}

// Implements adds an interface. For interfaces it is the extends list.
func (c *DefinedClass) Implements(iface types.TypeID) error {
	if err := c.named("implements"); err != nil {
		return err
	}
	return errors.Wrap(c.model.in.AddInterface(c.id, iface), "codemodel: implements")
}

// Interfaces returns the implemented interfaces.
func (c *DefinedClass) Interfaces() []types.TypeID { return c.model.in.Interfaces(c.id) }

// Field declares a field. init may be nil.
func (c *DefinedClass) Field(mods Mods, t types.TypeID, name string, init Expr) (*FieldVar, error) {
	if _, ok := c.GetField(name); ok {
		return nil, duplicate("field", name, c.FullName())
	}
	v, err := newVar(mods, t, name, init, targetField)
	if err != nil {
		return nil, err
	}
	fv := &FieldVar{Var: *v, owner: c}
	c.fields = append(c.fields, fv)
	return fv, nil
}

// GetField looks a field up by name.
func (c *DefinedClass) GetField(name string) (*FieldVar, bool) {
	for _, fv := range c.fields {
		if fv.name == name {
			return fv, true
		}
	}
	return nil, false
}

// Fields returns the fields in declaration order.
func (c *DefinedClass) Fields() []*FieldVar { return c.fields }

// Constructor adds a constructor.
func (c *DefinedClass) Constructor(mods Mods) (*Method, error) {
	if err := c.named("constructor"); err != nil {
		return nil, err
	}
	switch c.kind {
	case types.ClassKindInterface, types.ClassKindAnnotation:
		return nil, errors.Wrapf(ErrWrongKind, "constructor on %s %s", c.kind, c.FullName())
	}
	if err := mods.check(targetConstructor, c.name); err != nil {
		return nil, err
	}
	m := &Method{owner: c, mods: mods, name: c.name}
	c.ctors = append(c.ctors, m)
	return m, nil
}

// Constructors returns the constructors in declaration order.
func (c *DefinedClass) Constructors() []*Method { return c.ctors }

// Method adds a method returning ret (Void for void methods).
func (c *DefinedClass) Method(mods Mods, ret types.TypeID, name string) (*Method, error) {
	if err := javaname.CheckIdentifier(name); err != nil {
		return nil, errors.Wrapf(err, "codemodel: method of %s", c.FullName())
	}
	if ret == types.NoTypeID {
		return nil, errors.Newf("codemodel: method %s.%s has no return type", c.FullName(), name)
	}
	if err := mods.check(targetMethod, name); err != nil {
		return nil, err
	}
	if mods.Has(ModDefault) && c.kind != types.ClassKindInterface {
		return nil, errors.Wrapf(ErrWrongKind, "default method %s outside an interface", name)
	}
	m := &Method{owner: c, mods: mods, ret: ret, name: name}
	c.methods = append(c.methods, m)
	return m, nil
}

// Methods returns the methods in declaration order.
func (c *DefinedClass) Methods() []*Method { return c.methods }

// GetMethod finds a method by name and erased parameter types.
func (c *DefinedClass) GetMethod(name string, params ...types.TypeID) (*Method, bool) {
	in := c.model.in
outer:
	for _, m := range c.methods {
		if m.name != name || len(m.params) != len(params) || m.varParam != nil {
			continue
		}
		for i, p := range m.params {
			if in.Erasure(p.typ) != in.Erasure(params[i]) {
				continue outer
			}
		}
		return m, true
	}
	return nil, false
}

// EnumConstant declares a constant of an enum.
func (c *DefinedClass) EnumConstant(name string) (*EnumConstant, error) {
	if c.kind != types.ClassKindEnum {
		return nil, errors.Wrapf(ErrWrongKind, "enum constant %s on %s %s", name, c.kind, c.FullName())
	}
	if err := javaname.CheckIdentifier(name); err != nil {
		return nil, errors.Wrapf(err, "codemodel: enum constant of %s", c.FullName())
	}
	for _, ec := range c.constants {
		if ec.name == name {
			return nil, duplicate("enum constant", name, c.FullName())
		}
	}
	ec := &EnumConstant{owner: c, name: name}
	c.constants = append(c.constants, ec)
	return ec, nil
}

// EnumConstants returns the constants in declaration order.
func (c *DefinedClass) EnumConstants() []*EnumConstant { return c.constants }

// Nested declares a member class.
func (c *DefinedClass) Nested(mods Mods, name string, kind types.ClassKind) (*DefinedClass, error) {
	if err := c.named("nested class " + name); err != nil {
		return nil, err
	}
	if _, ok := c.GetNested(name); ok {
		return nil, duplicate("nested class", name, c.FullName())
	}
	if name == c.name {
		return nil, errors.Newf("codemodel: nested class %s has the name of its outer class", name)
	}
	if err := mods.check(targetNested, name); err != nil {
		return nil, err
	}
	id, err := c.model.in.DefineClass(types.ClassSpec{
		Name:     name,
		Outer:    c.id,
		Kind:     kind,
		Abstract: mods.Has(ModAbstract),
		Final:    mods.Has(ModFinal),
	})
	if err != nil {
		return nil, errors.Wrap(err, "codemodel: nested class")
	}
	nc := &DefinedClass{model: c.model, pkg: c.pkg, outer: c, id: id, name: name, kind: kind, mods: mods}
	c.nested = append(c.nested, nc)
	c.model.classes[id] = nc
	return nc, nil
}

// GetNested looks a member class up by simple name.
func (c *DefinedClass) GetNested(name string) (*DefinedClass, bool) {
	for _, nc := range c.nested {
		if nc.name == name {
			return nc, true
		}
	}
	return nil, false
}

// NestedClasses returns the member classes in declaration order.
func (c *DefinedClass) NestedClasses() []*DefinedClass { return c.nested }

// StaticInit returns the static initializer, creating it on first use.
func (c *DefinedClass) StaticInit() *Block {
	if c.staticInit == nil {
		c.staticInit = &Block{}
	}
	return c.staticInit
}

// Init returns the instance initializer, creating it on first use.
func (c *DefinedClass) Init() *Block {
	if c.init == nil {
		c.init = &Block{}
	}
	return c.init
}

// checkSignatures rejects two methods (or constructors) with the same
// erased signature, recursing into member classes.
func (c *DefinedClass) checkSignatures() error {
	var errs error
	seen := make(map[string]struct{}, len(c.methods)+len(c.ctors))
	for _, group := range [][]*Method{c.ctors, c.methods} {
		for _, m := range group {
			sig := m.Signature()
			if _, dup := seen[sig]; dup {
				errs = errors.CombineErrors(errs, duplicate("method", sig, c.FullName()))
				continue
			}
			seen[sig] = struct{}{}
		}
	}
	for _, nc := range c.nested {
		errs = errors.CombineErrors(errs, nc.checkSignatures())
	}
	return errs
}

// Declare prints the full class declaration.
func (c *DefinedClass) Declare(f format.Formatter) {
	in := f.Types()
	c.declareDoc(f)
	c.declareOwnLines(f)
	c.mods.Generate(f)
	f.Print(c.kind.Keyword())
	f.ID(c.name)
	if params := in.TypeParams(c.id); len(params) > 0 {
		declareTypeParams(f, params)
	}
	if c.kind == types.ClassKindClass {
		if super, ok := in.Super(c.id); ok && super != in.Builtins().Object {
			f.Print("extends")
			format.GenerateType(f, super)
		}
	}
	if ifaces := in.Interfaces(c.id); len(ifaces) > 0 {
		if c.kind == types.ClassKindInterface {
			f.Print("extends")
		} else {
			f.Print("implements")
		}
		format.GenerateTypes(f, ifaces)
	}
	f.PrintRune('{')
	f.Newline()
	f.Indent()
	c.declareBody(f)
	f.Outdent()
	f.PrintRune('}')
	f.Newline()
}

func (c *DefinedClass) declareBody(f format.Formatter) {
	// members are separated by one blank line, fields are grouped
	started := false
	section := func() {
		if started {
			f.Newline()
		}
		started = true
	}
	if len(c.constants) > 0 {
		section()
		for i, ec := range c.constants {
			if i > 0 {
				f.PrintRune(',')
				f.Newline()
			}
			ec.Declare(f)
		}
		f.PrintRune(';')
		f.Newline()
	}
	if len(c.fields) > 0 {
		section()
		for _, fv := range c.fields {
			fv.Declare(f)
		}
	}
	if c.staticInit != nil {
		section()
		f.Print("static")
		c.staticInit.State(f)
	}
	if c.init != nil {
		section()
		c.init.State(f)
	}
	for _, m := range c.ctors {
		section()
		m.Declare(f)
	}
	for _, m := range c.methods {
		section()
		m.Declare(f)
	}
	for _, nc := range c.nested {
		if nc.hidden {
			continue
		}
		section()
		nc.Declare(f)
	}
	if c.direct != "" {
		section()
		f.Raw(c.direct)
		f.Newline()
	}
}

// EnumConstant is one constant of an enum, optionally with constructor arguments.
type EnumConstant struct {
	annotations
	documented
	owner *DefinedClass
	name  string
	args  []Expr
}

func (ec *EnumConstant) Name() string { return ec.name }

// Arg appends a constructor argument.
func (ec *EnumConstant) Arg(e Expr) *EnumConstant {
	ec.args = append(ec.args, e)
	return ec
}

// Generate references the constant as Type.NAME.
func (ec *EnumConstant) Generate(f format.Formatter) {
	EnumRef(ec.owner.id, ec.name).Generate(f)
}

func (ec *EnumConstant) Declare(f format.Formatter) {
	ec.declareDoc(f)
	ec.declareOwnLines(f)
	f.ID(ec.name)
	if len(ec.args) > 0 {
		f.PrintRune('(')
		format.GenerateList(f, ec.args)
		f.PrintRune(')')
	}
}
