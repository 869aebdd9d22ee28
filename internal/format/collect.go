package format

import (
	"slices"

	"jcodemodel/internal/types"
)

// Usage records what a short name stands for inside one compilation unit.
type Usage struct {
	Name string
	// Types are the distinct type nodes printed under Name, in first-seen order.
	Types []types.TypeID
	// IsIdent is set when Name is also printed as a plain identifier.
	IsIdent bool
}

// UsageTable maps short names to their usages. It is built by Collect and
// consumed by Decide; it is not reused across compilation units.
type UsageTable struct {
	usages map[string]*Usage
}

func newUsageTable() *UsageTable {
	return &UsageTable{usages: make(map[string]*Usage, 32)}
}

// Get returns the usage recorded for name.
func (t *UsageTable) Get(name string) (*Usage, bool) {
	u, ok := t.usages[name]
	return u, ok
}

// Names returns every recorded name in sorted order.
func (t *UsageTable) Names() []string {
	names := make([]string, 0, len(t.usages))
	for name := range t.usages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len reports the number of distinct names.
func (t *UsageTable) Len() int {
	return len(t.usages)
}

func (t *UsageTable) usage(name string) *Usage {
	u, ok := t.usages[name]
	if !ok {
		u = &Usage{Name: name}
		t.usages[name] = u
	}
	return u
}

func (t *UsageTable) addType(name string, id types.TypeID) {
	u := t.usage(name)
	if !slices.Contains(u.Types, id) {
		u.Types = append(u.Types, id)
	}
}

// Collect walks root without producing output and records every type
// reference and identifier it would print. Error nodes are skipped.
func Collect(in *types.Interner, root Declaration) *UsageTable {
	c := &collector{silent: silent{in: in}, table: newUsageTable()}
	root.Declare(c)
	return c.table
}

// ContainsErrorTypes reports whether printing root would reach an error node.
func ContainsErrorTypes(in *types.Interner, root Declaration) bool {
	f := &errorFinder{silent: silent{in: in}}
	root.Declare(f)
	return f.found
}

// silent implements the text-producing half of Formatter as no-ops.
type silent struct {
	in *types.Interner
}

func (s *silent) Print(string)           {}
func (s *silent) PrintRune(rune)         {}
func (s *silent) Raw(string)             {}
func (s *silent) Newline()               {}
func (s *silent) Indent()                {}
func (s *silent) Outdent()               {}
func (s *silent) Printing() bool         { return false }
func (s *silent) Types() *types.Interner { return s.in }

type collector struct {
	silent
	table *UsageTable
}

func (c *collector) Type(id types.TypeID) {
	switch c.in.KindOf(id) {
	case types.KindError:
		return
	case types.KindClass, types.KindDirect:
		c.table.addType(c.in.Name(id), id)
	default:
		GenerateType(c, id)
	}
}

func (c *collector) ID(name string) {
	c.table.usage(name).IsIdent = true
}

type errorFinder struct {
	silent
	found bool
}

func (e *errorFinder) Type(id types.TypeID) {
	switch e.in.KindOf(id) {
	case types.KindError:
		e.found = true
	case types.KindClass, types.KindDirect:
	default:
		GenerateType(e, id)
	}
}

func (e *errorFinder) ID(string) {}
