package types

import "strings"

// Name returns the short name of a type as written inside its package,
// including generic arguments for narrowed classes.
func (in *Interner) Name(id TypeID) string {
	return in.render(id, false)
}

// FullName returns the canonical name (`java.util.Map.Entry`).
func (in *Interner) FullName(id TypeID) string {
	return in.render(id, true)
}

// String renders id for diagnostics; it never panics.
func (in *Interner) String(id TypeID) string {
	if info, ok := in.ErrorInfo(id); ok {
		return "<error: " + info.Message + ">"
	}
	if in.IsError(id) {
		return "<error>"
	}
	if _, ok := in.Lookup(id); !ok {
		return "<invalid>"
	}
	return in.FullName(id)
}

func (in *Interner) render(id TypeID, full bool) string {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	switch tt.Kind {
	case KindPrimitive:
		return in.prims[tt.Payload].Name
	case KindNull:
		return "null"
	case KindTypeVar:
		return in.typeVars[tt.Payload].Name
	case KindClass, KindDirect:
		info := &in.classes[tt.Payload]
		if !full {
			return info.Name
		}
		return in.qualify(info.Package, info.Outer, info.Name)
	case KindArray:
		return in.render(tt.Elem, full) + "[]"
	case KindWildcard:
		if tt.Bound == BoundSuper {
			return "? super " + in.render(tt.Elem, full)
		}
		if tt.Elem == in.builtins.Object {
			return "?"
		}
		return "? extends " + in.render(tt.Elem, full)
	case KindNarrowed:
		var sb strings.Builder
		sb.WriteString(in.render(tt.Elem, full))
		sb.WriteByte('<')
		for i, a := range in.args(tt) {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(in.render(a, full))
		}
		sb.WriteByte('>')
		return sb.String()
	default:
		panic("types: invalid TypeID")
	}
}

// BinaryName returns the JVM name, with `$` separating nested classes.
func (in *Interner) BinaryName(id TypeID) string {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	switch tt.Kind {
	case KindClass, KindDirect:
		info := &in.classes[tt.Payload]
		if info.Outer != NoTypeID {
			return in.BinaryName(info.Outer) + "$" + info.Name
		}
		return in.FullName(id)
	case KindArray:
		return in.BinaryName(tt.Elem) + "[]"
	case KindNarrowed:
		return in.BinaryName(tt.Elem)
	default:
		return in.FullName(id)
	}
}

// Package returns the owning package. Arrays live in the root package ("");
// primitives, null, type variables and wildcards have none.
func (in *Interner) Package(id TypeID) (string, bool) {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	switch tt.Kind {
	case KindClass, KindDirect:
		return in.classes[tt.Payload].Package, true
	case KindNarrowed:
		return in.Package(tt.Elem)
	case KindArray:
		return "", true
	default:
		return "", false
	}
}

// Outer returns the enclosing class of a nested class.
func (in *Interner) Outer(id TypeID) (TypeID, bool) {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	switch tt.Kind {
	case KindClass, KindDirect:
		outer := in.classes[tt.Payload].Outer
		return outer, outer != NoTypeID
	case KindNarrowed:
		return in.Outer(tt.Elem)
	default:
		return NoTypeID, false
	}
}

// TopLevel follows the outer chain up to the top-level class.
func (in *Interner) TopLevel(id TypeID) TypeID {
	for {
		outer, ok := in.Outer(id)
		if !ok {
			return id
		}
		id = outer
	}
}

// IsImplicitlyImported reports whether id lives in java.lang.
func (in *Interner) IsImplicitlyImported(id TypeID) bool {
	pkg, ok := in.Package(in.TopLevel(id))
	return ok && pkg == ImplicitPackage
}
