package types

import (
	"strings"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/javaname"
)

// ErrPrimitiveRef is returned by Ref for primitive type names.
var ErrPrimitiveRef = errors.New("types: primitive types are not references")

// Ref returns the reference node for a canonical class name. Repeated
// lookups of the same name return the same TypeID. Names ending in `[]`
// resolve to arrays of their component. Names found neither among the
// defined classes nor in the built-in JDK catalogue become direct nodes.
func (in *Interner) Ref(name string) (TypeID, error) {
	name = strings.TrimSpace(name)
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		comp, err := in.RefOrPrimitive(strings.TrimSpace(elem))
		if err != nil {
			return NoTypeID, err
		}
		return in.Array(comp), nil
	}
	if id, ok := in.byName[name]; ok {
		return id, nil
	}
	if _, ok := in.primsBy[name]; ok {
		return NoTypeID, errors.WithHint(
			errors.Wrapf(ErrPrimitiveRef, "%q", name),
			"use RefOrPrimitive when primitives are acceptable")
	}
	if err := javaname.CheckQualified(name); err != nil {
		return NoTypeID, errors.Wrap(err, "types: ref")
	}
	if entry, ok := jdkCatalog[name]; ok {
		return in.fromCatalog(name, entry), nil
	}
	return in.Direct(name), nil
}

// RefOrPrimitive is Ref that also accepts primitive names.
func (in *Interner) RefOrPrimitive(name string) (TypeID, error) {
	if id, ok := in.primsBy[strings.TrimSpace(name)]; ok {
		return id, nil
	}
	return in.Ref(name)
}

// MustRef panics when Ref fails.
func (in *Interner) MustRef(name string) TypeID {
	id, err := in.Ref(name)
	if err != nil {
		panic(err)
	}
	return id
}

// InCatalog reports whether fqn is one of the built-in JDK classes.
func InCatalog(fqn string) bool {
	_, ok := jdkCatalog[fqn]
	return ok
}

// CatalogShortName resolves a simple name against java.lang, the only
// package whose members need no import.
func CatalogShortName(simple string) (string, bool) {
	fqn := ImplicitPackage + "." + simple
	if _, ok := jdkCatalog[fqn]; ok {
		return fqn, true
	}
	return "", false
}

func (in *Interner) fromCatalog(fqn string, entry *catalogEntry) TypeID {
	info := ClassInfo{
		Kind:     entry.kind,
		Abstract: entry.abstract || entry.kind == ClassKindInterface,
		Final:    entry.final,
		pending:  entry,
	}
	if entry.outer != "" {
		outer := in.MustRef(entry.outer)
		info.Outer = outer
		info.Package, _ = in.Package(outer)
		info.Name = strings.TrimPrefix(fqn, entry.outer+".")
	} else {
		info.Package, info.Name = splitName(fqn)
	}
	return in.addClass(KindClass, info, fqn)
}

// resolvePending materialises the type parameters and supertypes of a
// catalogue class. The entry's type text is written over its own type
// parameters, which are resolved through the parser lookup hook.
func (in *Interner) resolvePending(info *ClassInfo) {
	entry := info.pending
	if entry == nil {
		return
	}
	info.pending = nil
	id := in.byName[in.qualify(info.Package, info.Outer, info.Name)]

	params := make([]TypeID, 0, len(entry.params))
	scope := make(map[string]TypeID, len(entry.params))
	for _, p := range entry.params {
		name, _, _ := strings.Cut(p, " ")
		tv := in.NewTypeVar(name, NoTypeID)
		scope[name] = tv
		params = append(params, tv)
	}
	parser := Parser{Types: in, Lookup: func(name string) (TypeID, bool) {
		tv, ok := scope[name]
		return tv, ok
	}}
	for i, p := range entry.params {
		if _, bound, ok := strings.Cut(p, " extends "); ok {
			in.SetTypeVarBound(params[i], parser.mustParse(bound))
		}
	}
	super := NoTypeID
	if entry.super != "" {
		super = parser.mustParse(entry.super)
	} else if id != in.builtins.Object {
		super = in.builtins.Object
	}
	ifaces := make([]TypeID, 0, len(entry.ifaces))
	for _, text := range entry.ifaces {
		ifaces = append(ifaces, parser.mustParse(text))
	}

	// the tables may have grown while parsing
	slot := &in.classes[in.types[id].Payload]
	slot.TypeParams = params
	slot.Super = super
	slot.Interfaces = ifaces
}
