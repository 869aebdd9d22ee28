package codemodel

import (
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/javaname"
	"jcodemodel/internal/types"
)

// Model is the root of a generated source tree. It is not safe for
// concurrent mutation; once built it may be printed from many goroutines.
type Model struct {
	in         *types.Interner
	packages   map[string]*Package
	classes    map[types.TypeID]*DefinedClass
	dontImport []types.TypeID
}

// NewModel creates an empty model with a fresh interner.
func NewModel() *Model {
	return &Model{
		in:       types.NewInterner(),
		packages: make(map[string]*Package, 8),
		classes:  make(map[types.TypeID]*DefinedClass, 32),
	}
}

// Types returns the model's interner.
func (m *Model) Types() *types.Interner { return m.in }

// Package returns the package called name, creating it on first use.
func (m *Model) Package(name string) (*Package, error) {
	if p, ok := m.packages[name]; ok {
		return p, nil
	}
	if err := javaname.CheckPackage(name); err != nil {
		return nil, errors.Wrap(err, "codemodel: package")
	}
	p := &Package{model: m, name: name}
	m.packages[name] = p
	return p, nil
}

// MustPackage is Package for names known to be valid.
func (m *Model) MustPackage(name string) *Package {
	p, err := m.Package(name)
	if err != nil {
		panic(err)
	}
	return p
}

// RootPackage returns the unnamed package.
func (m *Model) RootPackage() *Package { return m.MustPackage("") }

// Packages returns every package, sorted by name.
func (m *Model) Packages() []*Package {
	out := make([]*Package, 0, len(m.packages))
	for _, p := range m.packages {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Package) int { return strings.Compare(a.name, b.name) })
	return out
}

// Class defines a public top-level class from its canonical name.
func (m *Model) Class(fqn string, kind types.ClassKind) (*DefinedClass, error) {
	pkgName, name := "", fqn
	if idx := strings.LastIndexByte(fqn, '.'); idx >= 0 {
		pkgName, name = fqn[:idx], fqn[idx+1:]
	}
	p, err := m.Package(pkgName)
	if err != nil {
		return nil, err
	}
	return p.Class(ModPublic, name, kind)
}

// Lookup returns the defined class behind a type handle.
func (m *Model) Lookup(id types.TypeID) (*DefinedClass, bool) {
	c, ok := m.classes[m.in.Erasure(id)]
	return c, ok
}

// Ref resolves a canonical class name, see types.Interner.Ref.
func (m *Model) Ref(name string) (types.TypeID, error) { return m.in.Ref(name) }

// MustRef panics when Ref fails.
func (m *Model) MustRef(name string) types.TypeID { return m.in.MustRef(name) }

// ParseType parses Java type text.
func (m *Model) ParseType(text string) (types.TypeID, error) { return m.in.ParseType(text) }

// DontImport forces t to be printed fully qualified in every unit.
func (m *Model) DontImport(t types.TypeID) {
	if !slices.Contains(m.dontImport, t) {
		m.dontImport = append(m.dontImport, t)
	}
}

// Validate reports problems that can only be judged on the finished
// model: duplicate method signatures.
func (m *Model) Validate() error {
	var errs error
	for _, cls := range m.TopLevelClasses() {
		errs = errors.CombineErrors(errs, cls.checkSignatures())
	}
	return errs
}

// ContainsErrorTypes reports whether any emitted class references an
// unresolved type.
func (m *Model) ContainsErrorTypes() bool {
	for _, cls := range m.TopLevelClasses() {
		if !cls.hidden && format.ContainsErrorTypes(m.in, cls) {
			return true
		}
	}
	return false
}

// TopLevelClasses returns every top-level class, hidden ones included,
// ordered by package and then by name.
func (m *Model) TopLevelClasses() []*DefinedClass {
	var out []*DefinedClass
	for _, p := range m.Packages() {
		out = append(out, p.Classes()...)
	}
	return out
}

// Unit describes the compilation unit cls is written as.
func (m *Model) Unit(cls *DefinedClass) format.CompilationUnit {
	cu := format.CompilationUnit{
		Unit: format.Unit{
			Class:      cls.id,
			Siblings:   cls.pkg.classNames(),
			DontImport: m.dontImport,
		},
		Package: cls.pkg.name,
		Root:    cls,
	}
	if cls.header != nil {
		cu.Header = cls.header
	}
	return cu
}

// WriteClass prints the compilation unit of a top-level class to w.
func (m *Model) WriteClass(w io.Writer, cls *DefinedClass, opt format.Options) error {
	if cls.outer != nil {
		return errors.Newf("codemodel: %s is nested; write its top-level class", cls.FullName())
	}
	return format.WriteUnit(w, m.in, m.Unit(cls), opt)
}

// Package is a Java package of the model.
type Package struct {
	model     *Model
	name      string
	classes   []*DefinedClass
	resources []ResourceFile
}

func (p *Package) Name() string  { return p.name }
func (p *Package) IsRoot() bool  { return p.name == "" }
func (p *Package) Model() *Model { return p.model }

// Dir returns the package's directory, e.g. com/acme.
func (p *Package) Dir() string { return strings.ReplaceAll(p.name, ".", "/") }

// Class defines a top-level class in the package.
func (p *Package) Class(mods Mods, name string, kind types.ClassKind) (*DefinedClass, error) {
	if _, ok := p.Get(name); ok {
		return nil, duplicate("class", name, p.describe())
	}
	if _, ok := p.Resource(name + ".java"); ok {
		return nil, duplicate("class", name, p.describe())
	}
	if err := mods.check(targetClass, name); err != nil {
		return nil, err
	}
	id, err := p.model.in.DefineClass(types.ClassSpec{
		Name:     name,
		Package:  p.name,
		Kind:     kind,
		Abstract: mods.Has(ModAbstract),
		Final:    mods.Has(ModFinal),
	})
	if err != nil {
		return nil, errors.Wrap(err, "codemodel: class")
	}
	c := &DefinedClass{model: p.model, pkg: p, id: id, name: name, kind: kind, mods: mods}
	p.classes = append(p.classes, c)
	p.model.classes[id] = c
	return c, nil
}

// MustClass is Class for declarations known to be valid.
func (p *Package) MustClass(mods Mods, name string, kind types.ClassKind) *DefinedClass {
	c, err := p.Class(mods, name, kind)
	if err != nil {
		panic(err)
	}
	return c
}

// Get looks a top-level class up by simple name.
func (p *Package) Get(name string) (*DefinedClass, bool) {
	for _, c := range p.classes {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Classes returns the top-level classes sorted by name.
func (p *Package) Classes() []*DefinedClass {
	out := slices.Clone(p.classes)
	slices.SortFunc(out, func(a, b *DefinedClass) int { return strings.Compare(a.name, b.name) })
	return out
}

func (p *Package) classNames() []string {
	names := make([]string, len(p.classes))
	for i, c := range p.classes {
		names[i] = c.name
	}
	return names
}

func (p *Package) describe() string {
	if p.name == "" {
		return "the root package"
	}
	return "package " + p.name
}
