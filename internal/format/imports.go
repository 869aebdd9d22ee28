package format

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"jcodemodel/internal/types"
)

// Unit describes the compilation unit whose imports are being decided.
type Unit struct {
	// Class is the top-level class being written.
	Class types.TypeID
	// Siblings are the simple names of the top-level classes declared in
	// Class's package, Class included.
	Siblings []string
	// DontImport lists types that must always be printed qualified.
	DontImport []types.TypeID
}

// ImportSet is the result of Decide: the classes that may be printed by
// their short name. It is read-only once built.
type ImportSet struct {
	in      *types.Interner
	classes map[types.TypeID]struct{}
	names   map[string]types.TypeID
	dont    map[types.TypeID]struct{}
	log     *zap.Logger
}

func newImportSet(in *types.Interner, dont []types.TypeID, log *zap.Logger) *ImportSet {
	s := &ImportSet{
		in:      in,
		classes: make(map[types.TypeID]struct{}, 16),
		names:   make(map[string]types.TypeID, 16),
		dont:    make(map[types.TypeID]struct{}, len(dont)),
		log:     log,
	}
	for _, id := range dont {
		s.dont[in.Erasure(id)] = struct{}{}
	}
	return s
}

// Contains reports whether id (or its erasure) was selected for import.
func (s *ImportSet) Contains(id types.TypeID) bool {
	_, ok := s.classes[s.in.Erasure(id)]
	return ok
}

// Len reports the number of selected classes, implicit ones included.
func (s *ImportSet) Len() int {
	return len(s.classes)
}

// Sorted returns the selected classes ordered by canonical name.
func (s *ImportSet) Sorted() []types.TypeID {
	out := make([]types.TypeID, 0, len(s.classes))
	for id := range s.classes {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b types.TypeID) int {
		return strings.Compare(s.in.FullName(a), s.in.FullName(b))
	})
	return out
}

// Imports returns the classes that need an import statement in unit:
// Sorted minus java.lang, the root package and the unit's own package.
func (s *ImportSet) Imports(unit Unit) []types.TypeID {
	var out []types.TypeID
	for _, id := range s.Sorted() {
		if !s.implicitlyImported(id, unit) {
			out = append(out, id)
		}
	}
	return out
}

func (s *ImportSet) add(id types.TypeID) bool {
	base := s.in.Erasure(id)
	if _, ok := s.dont[base]; ok {
		s.log.Debug("import suppressed", zap.String("class", s.in.FullName(base)))
		return false
	}
	name := s.in.Name(base)
	if prev, ok := s.names[name]; ok {
		if prev != base {
			s.log.Debug("import name taken",
				zap.String("class", s.in.FullName(base)),
				zap.String("by", s.in.FullName(prev)))
		}
		return false
	}
	s.names[name] = base
	s.classes[base] = struct{}{}
	s.log.Debug("import added", zap.String("class", s.in.FullName(base)))
	return true
}

func (s *ImportSet) implicitlyImported(id types.TypeID, unit Unit) bool {
	in := s.in
	base := in.Erasure(id)
	pkg, ok := in.Package(base)
	if !ok || pkg == "" || pkg == types.ImplicitPackage {
		return true
	}
	unitPkg, _ := in.Package(unit.Class)
	if pkg != unitPkg {
		return false
	}
	if _, nested := in.Outer(base); !nested {
		return true
	}
	return in.TopLevel(base) == unit.Class
}

// Decide picks the imports for unit from the usages collected over its tree.
// Names are visited in sorted order so the result does not depend on
// traversal order. log may be nil.
func Decide(in *types.Interner, table *UsageTable, unit Unit, log *zap.Logger) *ImportSet {
	if log == nil {
		log = zap.NewNop()
	}
	d := decider{in: in, table: table, unit: unit, set: newImportSet(in, unit.DontImport, log)}

	// the class being written is always reachable by its short name
	d.set.add(unit.Class)

	for _, name := range table.Names() {
		u, _ := table.Get(name)
		if len(u.Types) == 0 {
			continue
		}
		if !d.ambiguous(u) {
			ref := u.Types[0]
			if d.shouldBeImported(ref) {
				d.set.add(ref)
			} else {
				d.importOuter(ref)
			}
			continue
		}
		refs := slices.Clone(u.Types)
		slices.SortFunc(refs, func(a, b types.TypeID) int {
			return strings.Compare(in.FullName(a), in.FullName(b))
		})
		for _, ref := range refs {
			d.importOuter(ref)
		}
	}
	return d.set
}

type decider struct {
	in    *types.Interner
	table *UsageTable
	unit  Unit
	set   *ImportSet
}

// isIdent reports whether the identifier use of a name competes with its
// types. Nested types are always reached through their outer class, so an
// identifier never shadows them.
func (d *decider) isIdent(u *Usage) bool {
	if !u.IsIdent {
		return false
	}
	for _, id := range u.Types {
		if _, nested := d.in.Outer(id); nested {
			return false
		}
	}
	return true
}

func (d *decider) ambiguous(u *Usage) bool {
	if len(u.Types) > 1 {
		return true
	}
	if len(u.Types) == 0 {
		return false
	}
	if d.isIdent(u) {
		return true
	}
	ref := u.Types[0]
	pkg, _ := d.in.Package(ref)
	if pkg == types.ImplicitPackage {
		// a class of the same name in the unit's package hides java.lang
		return slices.Contains(d.unit.Siblings, u.Name)
	}
	return false
}

// shouldBeImported decides by convention: nested classes are imported only
// when their name already embeds their outer class's name.
func (d *decider) shouldBeImported(id types.TypeID) bool {
	base := d.in.Erasure(id)
	outer, nested := d.in.Outer(base)
	if !nested {
		return true
	}
	if strings.Contains(d.in.Name(base), d.in.Name(outer)) {
		return d.shouldBeImported(outer)
	}
	return false
}

func (d *decider) causesNoAmbiguity(id types.TypeID) bool {
	name := d.in.Name(id)
	u, ok := d.table.Get(name)
	if !ok {
		pkg, _ := d.in.Package(id)
		return pkg != types.ImplicitPackage || !slices.Contains(d.unit.Siblings, name)
	}
	return !d.ambiguous(u) && slices.Contains(u.Types, id)
}

// importOuter imports the nearest enclosing class of id that can be
// imported without ambiguity, so id prints as Outer.Name.
func (d *decider) importOuter(id types.TypeID) {
	outer, ok := d.in.Outer(id)
	if !ok {
		return
	}
	if d.causesNoAmbiguity(outer) && d.shouldBeImported(outer) {
		d.set.add(outer)
		return
	}
	d.importOuter(outer)
}
