package structgen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jcodemodel/internal/codemodel"
	"jcodemodel/internal/dag"
	"jcodemodel/internal/diag"
	"jcodemodel/internal/javaname"
	"jcodemodel/internal/types"
)

const lastUpdatedField = "lastUpdated"

// Generator turns descriptors into classes of one code model. Add every
// descriptor first so that classes can refer to each other across files,
// then call Build once.
type Generator struct {
	model  *codemodel.Model
	in     *types.Interner
	report diag.Reporter
	log    *zap.Logger

	order  []*genClass
	byName map[string]*genClass
	byID   map[types.TypeID]*genClass
	simple map[string][]*genClass
	built  bool
}

type genClass struct {
	decl ClassDecl
	loc  diag.Location
	root string // descriptor package
	pkg  string
	fqn  string
	cls  *codemodel.DefinedClass
	opts Options

	parent      *genClass
	finals      []*codemodel.FieldVar
	lastUpdated *codemodel.FieldVar
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for per-class debug output.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// New returns a generator adding classes to m and reporting problems to r.
func New(m *codemodel.Model, r diag.Reporter, opts ...Option) *Generator {
	g := &Generator{
		model:  m,
		in:     m.Types(),
		report: r,
		log:    zap.NewNop(),
		byName: make(map[string]*genClass),
		byID:   make(map[types.TypeID]*genClass),
		simple: make(map[string][]*genClass),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add declares the classes of one descriptor read from file.
func (g *Generator) Add(file string, d *Descriptor) {
	loc := diag.Location{File: file}
	if g.built {
		diag.ReportError(g.report, diag.GenRejected, loc, "descriptor added after Build").Emit()
		return
	}
	if len(d.Classes) == 0 {
		diag.ReportWarning(g.report, diag.DscEmpty, loc, "no classes declared").Emit()
		return
	}
	if d.Package != "" {
		if err := javaname.CheckPackage(d.Package); err != nil {
			diag.ReportError(g.report, diag.DscBadName, loc.Child("package"), err.Error()).Emit()
			return
		}
	}
	base := g.options(loc.Child("options"), d.Options)
	sub := make(map[string]Options, len(d.Packages))
	for key, words := range d.Packages {
		sub[key] = g.options(loc.Child("packages").Child(key), words)
	}

	for i, decl := range d.Classes {
		cloc := loc.Child(decl.Name)
		if decl.Name == "" {
			cloc = loc.Child(fmt.Sprintf("classes[%d]", i))
		}
		g.declare(decl, cloc, d.Package, base, sub)
	}
}

func (g *Generator) declare(decl ClassDecl, loc diag.Location, root string, base Options, sub map[string]Options) {
	subPkg, name := "", decl.Name
	if idx := strings.LastIndexByte(decl.Name, '.'); idx >= 0 {
		subPkg, name = decl.Name[:idx], decl.Name[idx+1:]
	}
	if err := javaname.CheckIdentifier(name); err != nil {
		diag.ReportError(g.report, diag.DscBadName, loc, err.Error()).Emit()
		return
	}
	pkg := join(root, subPkg)
	fqn := join(pkg, name)
	if prev, dup := g.byName[fqn]; dup {
		diag.ReportError(g.report, diag.DscDuplicateClass, loc, "class "+fqn+" declared twice").
			WithNote(prev.loc, "first declared here").
			Emit()
		return
	}
	p, err := g.model.Package(pkg)
	if err != nil {
		diag.ReportError(g.report, diag.DscBadName, loc, err.Error()).Emit()
		return
	}
	mods := codemodel.ModPublic
	if decl.Abstract {
		mods |= codemodel.ModAbstract
	}
	cls, err := p.Class(mods, name, types.ClassKindClass)
	if err != nil {
		g.rejected(loc, err)
		return
	}

	// sub-package options apply from the outermost package inwards
	inherited := base
	if subPkg != "" {
		parts := strings.Split(subPkg, ".")
		for i := range parts {
			if o, ok := sub[strings.Join(parts[:i+1], ".")]; ok {
				inherited = o.Over(inherited)
			}
		}
	}
	gc := &genClass{
		decl: decl,
		loc:  loc,
		root: root,
		pkg:  pkg,
		fqn:  fqn,
		cls:  cls,
		opts: g.options(loc.Child("options"), decl.Options).Over(inherited),
	}
	g.order = append(g.order, gc)
	g.byName[fqn] = gc
	g.byID[cls.ID()] = gc
	g.simple[name] = append(g.simple[name], gc)
}

func (g *Generator) options(loc diag.Location, words []string) Options {
	o, problems := ParseOptions(words)
	for _, p := range problems {
		if p.Conflict {
			diag.ReportError(g.report, diag.DscConflictingOptions, loc,
				fmt.Sprintf("option %q contradicts an earlier option", p.Word)).Emit()
			continue
		}
		diag.ReportError(g.report, diag.DscUnknownOption, loc, fmt.Sprintf("unknown option %q", p.Word)).
			WithHint("known options: getter, setter, final, lastupdated, redirect, their no- forms and a visibility").
			Emit()
	}
	return o
}

func (g *Generator) rejected(loc diag.Location, err error) {
	code := diag.GenRejected
	if errors.Is(err, codemodel.ErrDuplicate) {
		code = diag.DscDuplicateField
	}
	diag.ReportError(g.report, code, loc, err.Error()).Emit()
}

// Build resolves parents and field types and generates the members of
// every added class. It returns the generated classes in declaration order.
func (g *Generator) Build() []*codemodel.DefinedClass {
	if g.built {
		return g.classes()
	}
	g.built = true
	for _, gc := range g.order {
		g.inherit(gc)
	}
	sorted := g.parentsFirst()
	for _, gc := range sorted {
		if gc.parent != nil {
			if err := gc.cls.Extends(gc.parent.cls.ID()); err != nil {
				g.rejected(gc.loc.Child("extends"), err)
			}
		}
	}
	for _, gc := range sorted {
		g.fields(gc)
	}
	for _, gc := range sorted {
		g.constructor(gc)
	}
	out := g.classes()
	g.log.Debug("struct classes generated", zap.Int("classes", len(out)))
	return out
}

func (g *Generator) classes() []*codemodel.DefinedClass {
	out := make([]*codemodel.DefinedClass, len(g.order))
	for i, gc := range g.order {
		out[i] = gc.cls
	}
	return out
}

// inherit resolves the extends and implements clauses. A parent that is
// an interface is implemented instead. Described parents are only linked
// here; Build applies them once cycles are ruled out.
func (g *Generator) inherit(gc *genClass) {
	if text := strings.TrimSpace(gc.decl.Extends); text != "" {
		loc := gc.loc.Child("extends")
		id, ok := g.resolve(gc, text, loc)
		switch {
		case !ok:
		case g.in.IsPrimitive(id):
			diag.ReportError(g.report, diag.TypPrimitiveParent, loc, gc.fqn+" cannot extend "+text).Emit()
		case g.in.KindOf(id) == types.KindArray:
			diag.ReportError(g.report, diag.TypBadSyntax, loc, gc.fqn+" cannot extend array "+text).Emit()
		case g.in.IsInterface(id):
			if err := gc.cls.Implements(id); err != nil {
				g.rejected(loc, err)
			}
		default:
			if parent, ok := g.byID[g.in.Erasure(id)]; ok {
				gc.parent = parent
			} else if err := gc.cls.Extends(id); err != nil {
				g.rejected(loc, err)
			}
		}
	}
	for i, text := range gc.decl.Implements {
		loc := gc.loc.Child(fmt.Sprintf("implements[%d]", i))
		id, ok := g.resolve(gc, text, loc)
		if !ok {
			continue
		}
		if g.in.KindOf(g.in.Erasure(id)) == types.KindClass && !g.in.IsInterface(id) {
			diag.ReportError(g.report, diag.TypNotInterface, loc, g.in.FullName(id)+" is not an interface").Emit()
			continue
		}
		if err := gc.cls.Implements(id); err != nil {
			g.rejected(loc, err)
		}
	}
}

// parentsFirst orders the added classes so that every described parent
// comes before its subclasses. A class whose parent chain leads back to
// itself is reported and loses its parent; the rest of the loop follows it.
func (g *Generator) parentsFirst() []*genClass {
	names := make([]string, len(g.order))
	nodes := make([]dag.Node, len(g.order))
	for i, gc := range g.order {
		names[i] = gc.fqn
		nodes[i] = dag.Node{Name: gc.fqn}
		if gc.parent != nil {
			nodes[i].After = []string{gc.parent.fqn}
		}
	}
	idx := dag.BuildIndex(names)
	graph, problems := dag.BuildGraph(idx, nodes)
	for _, p := range problems {
		if p.Kind == dag.ProblemSelf {
			g.cyclic(g.byName[p.Node])
		}
	}

	topo := dag.ToposortKahn(graph)
	out := make([]*genClass, 0, len(g.order))
	for _, id := range topo.Order {
		out = append(out, g.byName[idx.IDToName[id]])
	}
	for _, id := range topo.Cycles {
		gc := g.byName[idx.IDToName[id]]
		if onCycle(gc) {
			g.cyclic(gc)
		}
		out = append(out, gc)
	}
	return out
}

func onCycle(gc *genClass) bool {
	seen := map[*genClass]bool{gc: true}
	for p := gc.parent; p != nil; p = p.parent {
		if seen[p] {
			return p == gc
		}
		seen[p] = true
	}
	return false
}

func (g *Generator) cyclic(gc *genClass) {
	diag.ReportError(g.report, diag.TypCyclicExtends, gc.loc.Child("extends"),
		gc.fqn+" inherits from itself").Emit()
	gc.parent = nil
}

func (g *Generator) fields(gc *genClass) {
	for i, fd := range gc.decl.Fields {
		loc := gc.loc.Child(fd.Name)
		if fd.Name == "" {
			loc = gc.loc.Child(fmt.Sprintf("fields[%d]", i))
		}
		if err := javaname.CheckIdentifier(fd.Name); err != nil {
			diag.ReportError(g.report, diag.DscBadName, loc, err.Error()).Emit()
			continue
		}
		if strings.TrimSpace(fd.Type) == "" {
			diag.ReportError(g.report, diag.DscMissingType, loc, "field "+fd.Name+" has no type").Emit()
			continue
		}
		typ, ok := g.resolve(gc, fd.Type, loc.Child("type"))
		if !ok {
			continue
		}
		s := g.options(loc.Child("options"), fd.Options).Over(gc.opts).Settings()
		mods := s.Visibility
		if s.Final {
			mods |= codemodel.ModFinal
		}
		fv, err := gc.cls.Field(mods, typ, fd.Name, nil)
		if err != nil {
			g.rejected(loc, err)
			continue
		}
		if s.Final {
			gc.finals = append(gc.finals, fv)
		}
		if s.Setter && !s.Final {
			g.setter(gc, fv, s.LastUpdated, loc)
		}
		if s.Getter {
			g.getter(gc, fv, loc)
		}
		if s.Redirect {
			diag.ReportWarning(g.report, diag.GenSkipped, loc,
				"redirect needs the methods of "+g.in.String(typ)+", which are not known").Emit()
		}
	}
}

func (g *Generator) setter(gc *genClass, fv *codemodel.FieldVar, touch bool, loc diag.Location) {
	m, err := gc.cls.Method(codemodel.ModPublic, g.in.Builtins().Void, "set"+capitalize(fv.Name()))
	if err != nil {
		g.rejected(loc, err)
		return
	}
	m.Javadoc().Add("set the {@link #" + fv.Name() + "}")
	param, err := m.Param(codemodel.ModNone, fv.Type(), fv.Name())
	if err != nil {
		g.rejected(loc, err)
		return
	}
	m.Body().Assign(fv.Ref(), param)
	if !touch {
		return
	}
	if stamp := g.stamp(gc, loc); stamp != nil {
		instant := g.in.MustRef("java.time.Instant")
		m.Body().Assign(stamp.Ref(), codemodel.InvokeStatic(instant, "now"))
	}
}

// stamp returns the lastUpdated field of gc, declaring it and its getter
// on first use.
func (g *Generator) stamp(gc *genClass, loc diag.Location) *codemodel.FieldVar {
	if gc.lastUpdated != nil {
		return gc.lastUpdated
	}
	fv, err := gc.cls.Field(codemodel.ModPrivate, g.in.MustRef("java.time.Instant"), lastUpdatedField, codemodel.Null())
	if err != nil {
		g.rejected(loc, err)
		return nil
	}
	fv.Javadoc().Add("last time the class was directly set a field using a setter")
	gc.lastUpdated = fv
	g.getter(gc, fv, loc)
	return fv
}

func (g *Generator) getter(gc *genClass, fv *codemodel.FieldVar, loc diag.Location) {
	prefix := "get"
	if fv.Type() == g.in.Builtins().Boolean {
		prefix = "is"
	}
	m, err := gc.cls.Method(codemodel.ModPublic, fv.Type(), prefix+capitalize(fv.Name()))
	if err != nil {
		g.rejected(loc, err)
		return
	}
	m.Javadoc().AddReturn().Add("the {@link #" + fv.Name() + "}")
	m.Body().Return(fv)
}

// inheritedFinals returns the final fields of every described ancestor,
// outermost ancestor first.
func (g *Generator) inheritedFinals(gc *genClass) []*codemodel.FieldVar {
	if gc.parent == nil {
		return nil
	}
	out := g.inheritedFinals(gc.parent)
	return append(out, gc.parent.finals...)
}

// constructor declares a constructor taking the inherited final fields,
// passed on to super, followed by the class's own final fields.
func (g *Generator) constructor(gc *genClass) {
	inherited := g.inheritedFinals(gc)
	if len(inherited) == 0 && len(gc.finals) == 0 {
		return
	}
	ctor, err := gc.cls.Constructor(codemodel.ModPublic)
	if err != nil {
		g.rejected(gc.loc, err)
		return
	}
	if len(inherited) > 0 {
		call := codemodel.Call("super")
		for _, fv := range inherited {
			p, err := ctor.Param(codemodel.ModNone, fv.Type(), fv.Name())
			if err != nil {
				g.rejected(gc.loc, err)
				return
			}
			call.Arg(p)
		}
		ctor.Body().Add(call)
	}
	for _, fv := range gc.finals {
		p, err := ctor.Param(codemodel.ModNone, fv.Type(), fv.Name())
		if err != nil {
			g.rejected(gc.loc, err)
			return
		}
		ctor.Body().Assign(fv.Ref(), p)
	}
}

func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
