package structgen

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/diag"
	"jcodemodel/internal/types"
)

// Container wraps a field type in an array or a collection.
type Container uint8

const (
	ContainerArray Container = iota
	ContainerList
	ContainerSet
	ContainerMap
)

func (c Container) String() string {
	switch c {
	case ContainerArray:
		return "[]"
	case ContainerList:
		return "list"
	case ContainerSet:
		return "set"
	case ContainerMap:
		return "map"
	}
	return "?"
}

// ErrBadContainer is returned for a suffix that names no container.
var ErrBadContainer = errors.New("structgen: unknown container suffix")

var (
	baseClassRE = regexp.MustCompile(`^\s*([\pL\pN_$.]+)\s*(.*)$`)
	containerRE = regexp.MustCompile(`^\s*(\[\s*\]|[\pL\pN_]+)\s*(.*)$`)
)

// SplitType separates a base class name from its container suffixes,
// innermost first: "int [][] map" is int, then two arrays, then a map.
func SplitType(text string) (string, []Container, error) {
	m := baseClassRE.FindStringSubmatch(text)
	if m == nil {
		return "", nil, errors.Newf("structgen: no class name in %q", text)
	}
	base, rest := m[1], m[2]
	var wraps []Container
	for rest != "" {
		m = containerRE.FindStringSubmatch(rest)
		if m == nil {
			return "", nil, errors.Wrapf(ErrBadContainer, "%q in %q", rest, text)
		}
		switch strings.ToLower(strings.Join(strings.Fields(m[1]), "")) {
		case "[]":
			wraps = append(wraps, ContainerArray)
		case "list":
			wraps = append(wraps, ContainerList)
		case "set":
			wraps = append(wraps, ContainerSet)
		case "map":
			wraps = append(wraps, ContainerMap)
		default:
			return "", nil, errors.Wrapf(ErrBadContainer, "%q in %q", m[1], text)
		}
		rest = m[2]
	}
	return base, wraps, nil
}

// typeAliases are the short spellings accepted for common field types.
var typeAliases = map[string]string{
	"bool":      "boolean",
	"Bool":      "java.lang.Boolean",
	"character": "char",
	"Char":      "java.lang.Character",
	"Int":       "java.lang.Integer",
	"date":      "java.time.Instant",
	"datetime":  "java.time.Instant",
	"instant":   "java.time.Instant",
	"obj":       "java.lang.Object",
	"object":    "java.lang.Object",
	"string":    "java.lang.String",
}

// resolve turns field or parent type text into a type. Problems are
// reported at loc; ok is false when the text cannot be used.
func (g *Generator) resolve(gc *genClass, text string, loc diag.Location) (types.TypeID, bool) {
	text = strings.TrimSpace(text)
	base, wraps := text, []Container(nil)
	if !strings.ContainsAny(text, "<?,") {
		var err error
		base, wraps, err = SplitType(text)
		if err != nil {
			diag.ReportError(g.report, diag.TypBadSyntax, loc, err.Error()).Emit()
			return types.NoTypeID, false
		}
	}

	var found []diag.Diagnostic
	p := types.Parser{Types: g.in, Lookup: func(name string) (types.TypeID, bool) {
		id, ok, d := g.lookup(gc, name, loc)
		if d != nil {
			found = append(found, *d)
		}
		return id, ok
	}}
	id, err := p.Parse(base)
	failed := false
	for _, d := range found {
		g.report.Report(d)
		failed = failed || d.Severity == diag.SevError
	}
	if failed {
		return types.NoTypeID, false
	}
	if err != nil {
		diag.ReportError(g.report, diag.TypBadSyntax, loc, err.Error()).Emit()
		return types.NoTypeID, false
	}
	for _, w := range wraps {
		id = g.wrap(id, w)
	}
	return id, true
}

// lookup resolves one class name in the scope of gc: classes of the same
// descriptor by local name, then described classes by unique simple name,
// then aliases, java.lang and java.util. Unknown simple names are taken
// to live in the package of gc.
func (g *Generator) lookup(gc *genClass, name string, loc diag.Location) (types.TypeID, bool, *diag.Diagnostic) {
	if other, ok := g.byName[join(gc.root, name)]; ok {
		return other.cls.ID(), true, nil
	}
	if strings.Contains(name, ".") {
		return types.NoTypeID, false, nil
	}
	if other, ok := g.byName[join(gc.pkg, name)]; ok {
		return other.cls.ID(), true, nil
	}
	switch cands := g.simple[name]; len(cands) {
	case 0:
	case 1:
		return cands[0].cls.ID(), true, nil
	default:
		names := make([]string, len(cands))
		for i, c := range cands {
			names[i] = c.fqn
		}
		d := diag.NewError(diag.TypAmbiguous, loc,
			"simple name "+name+" matches "+strings.Join(names, ", ")).
			WithHint("use the qualified name")
		return types.NoTypeID, false, &d
	}
	if alias, ok := typeAliases[name]; ok {
		if prim, ok := g.in.Primitive(alias); ok {
			return prim, true, nil
		}
		id, err := g.in.Ref(alias)
		return id, err == nil, nil
	}
	if _, ok := g.in.Primitive(name); ok {
		return types.NoTypeID, false, nil
	}
	if _, ok := types.CatalogShortName(name); ok {
		return types.NoTypeID, false, nil
	}
	if fqn := "java.util." + name; types.InCatalog(fqn) {
		id, err := g.in.Ref(fqn)
		return id, err == nil, nil
	}
	fqn := join(gc.pkg, name)
	d := diag.New(diag.SevWarning, diag.TypUnresolved, loc, name+" is not known, assuming "+fqn)
	return g.in.Direct(fqn), true, &d
}

func (g *Generator) wrap(id types.TypeID, c Container) types.TypeID {
	in := g.in
	switch c {
	case ContainerList:
		return in.MustNarrow(in.MustRef("java.util.List"), in.Boxify(id))
	case ContainerSet:
		return in.MustNarrow(in.MustRef("java.util.Set"), in.Boxify(id))
	case ContainerMap:
		return in.MustNarrow(in.MustRef("java.util.Map"), in.Builtins().Object, in.Boxify(id))
	}
	return in.Array(id)
}

func join(pkg, name string) string {
	switch {
	case pkg == "":
		return name
	case name == "":
		return pkg
	}
	return pkg + "." + name
}
