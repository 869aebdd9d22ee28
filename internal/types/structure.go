package types

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Array returns the array node wrapping elem. Arrays are hash-consed, so
// two calls with the same element yield the same TypeID.
//
// Array(Void) has no meaning in Java; the interner does not trap it.
func (in *Interner) Array(elem TypeID) TypeID {
	in.mustNotBeError(in.MustLookup(elem))
	return in.Intern(MakeArray(elem))
}

// ElementType returns the component of an array node.
func (in *Interner) ElementType(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID, false
	}
	return tt.Elem, true
}

// WildcardExtends returns `? extends bound`.
func (in *Interner) WildcardExtends(bound TypeID) TypeID {
	return in.Intern(MakeWildcard(in.Boxify(bound), BoundExtends))
}

// WildcardSuper returns `? super bound`.
func (in *Interner) WildcardSuper(bound TypeID) TypeID {
	return in.Intern(MakeWildcard(in.Boxify(bound), BoundSuper))
}

// Wildcard returns the unbounded `?`.
func (in *Interner) Wildcard() TypeID {
	return in.WildcardExtends(in.builtins.Object)
}

// Narrow instantiates a generic class with type arguments. Primitive
// arguments are boxed. Narrowing an already narrowed class appends the
// arguments to the existing list, so the basis of a narrowed node is always
// a plain class.
func (in *Interner) Narrow(basis TypeID, args ...TypeID) (TypeID, error) {
	tt, ok := in.Lookup(basis)
	if !ok {
		return NoTypeID, errors.New("types: narrow of invalid TypeID")
	}
	var prefix []TypeID
	switch tt.Kind {
	case KindClass, KindDirect:
	case KindNarrowed:
		prefix = in.args(tt)
		basis = tt.Elem
	case KindError:
		in.mustNotBeError(tt)
	default:
		return NoTypeID, errors.Wrapf(ErrNotNarrowable, "%s (%s)", in.String(basis), tt.Kind)
	}
	if len(args) == 0 && len(prefix) == 0 {
		return basis, nil
	}
	all := make([]TypeID, 0, len(prefix)+len(args))
	all = append(all, prefix...)
	for _, a := range args {
		if _, ok := in.Lookup(a); !ok {
			return NoTypeID, errors.New("types: narrow with invalid type argument")
		}
		if in.KindOf(a) == KindPrimitive && a == in.builtins.Void {
			return NoTypeID, errors.New("types: void cannot be a type argument")
		}
		all = append(all, in.Boxify(a))
	}
	return in.Intern(makeNarrowed(basis, in.internArgs(all))), nil
}

// MustNarrow panics when Narrow fails.
func (in *Interner) MustNarrow(basis TypeID, args ...TypeID) TypeID {
	id, err := in.Narrow(basis, args...)
	if err != nil {
		panic(err)
	}
	return id
}

// Erasure strips generic arguments from a narrowed class.
func (in *Interner) Erasure(id TypeID) TypeID {
	tt := in.MustLookup(id)
	if tt.Kind == KindNarrowed {
		return tt.Elem
	}
	return id
}

// Boxify maps a primitive to its wrapper class and returns any other type unchanged.
func (in *Interner) Boxify(id TypeID) TypeID {
	if info, ok := in.PrimitiveInfo(id); ok {
		return info.Boxed
	}
	return id
}

// Unboxify maps one of the nine wrapper classes back to its primitive.
func (in *Interner) Unboxify(id TypeID) TypeID {
	if prim, ok := in.unboxed[id]; ok {
		return prim
	}
	return id
}

// IsPrimitive reports whether id is a primitive type.
func (in *Interner) IsPrimitive(id TypeID) bool {
	return in.KindOf(id) == KindPrimitive
}

// IsReference reports whether id is anything but a primitive.
func (in *Interner) IsReference(id TypeID) bool {
	k := in.KindOf(id)
	return k != KindPrimitive && k != KindInvalid
}

// IsParameterized reports whether id carries type arguments.
func (in *Interner) IsParameterized(id TypeID) bool {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	return tt.Kind == KindNarrowed && len(in.args(tt)) > 0
}

// IsInterface reports whether the erasure of id is an interface.
func (in *Interner) IsInterface(id TypeID) bool {
	info, ok := in.ClassInfo(in.erasureChecked(id))
	return ok && info.Kind == ClassKindInterface
}

// IsAbstract reports whether the erasure of id is abstract.
func (in *Interner) IsAbstract(id TypeID) bool {
	info, ok := in.ClassInfo(in.erasureChecked(id))
	return ok && info.Abstract
}

func (in *Interner) erasureChecked(id TypeID) TypeID {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	return in.Erasure(id)
}

// TypeArgs returns the arguments of a narrowed class.
func (in *Interner) TypeArgs(id TypeID) []TypeID {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	return cloneTypeArgs(in.args(tt))
}

// TypeParams returns the declared type variables of the erasure of id.
func (in *Interner) TypeParams(id TypeID) []TypeID {
	info, ok := in.ClassInfo(in.erasureChecked(id))
	if !ok {
		return nil
	}
	return cloneTypeArgs(info.TypeParams)
}

// Super returns the direct superclass. For a narrowed class the basis's
// type parameters are replaced by the arguments. Object, primitives and
// null have no superclass.
func (in *Interner) Super(id TypeID) (TypeID, bool) {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	switch tt.Kind {
	case KindClass, KindDirect:
		info, _ := in.ClassInfo(id)
		return info.Super, info.Super != NoTypeID
	case KindNarrowed:
		sup, ok := in.Super(tt.Elem)
		if !ok {
			return NoTypeID, false
		}
		return in.SubstituteParams(sup, in.TypeParams(tt.Elem), in.args(tt)), true
	case KindArray:
		return in.builtins.Object, true
	case KindTypeVar:
		if bound := in.typeVars[tt.Payload].Bound; bound != NoTypeID {
			return bound, true
		}
		return in.builtins.Object, true
	case KindWildcard:
		if tt.Bound == BoundExtends {
			return tt.Elem, true
		}
		return in.builtins.Object, true
	default:
		return NoTypeID, false
	}
}

// Interfaces returns the directly implemented interfaces in declaration order.
func (in *Interner) Interfaces(id TypeID) []TypeID {
	tt := in.MustLookup(id)
	in.mustNotBeError(tt)
	switch tt.Kind {
	case KindClass, KindDirect:
		info, _ := in.ClassInfo(id)
		return slices.Clone(info.Interfaces)
	case KindNarrowed:
		raw := in.Interfaces(tt.Elem)
		params := in.TypeParams(tt.Elem)
		args := in.args(tt)
		for i, iface := range raw {
			raw[i] = in.SubstituteParams(iface, params, args)
		}
		return raw
	case KindTypeVar:
		if bound := in.typeVars[tt.Payload].Bound; bound != NoTypeID {
			return in.Interfaces(bound)
		}
	}
	return nil
}

// ContainsTypeVar reports whether tv occurs anywhere inside id.
func (in *Interner) ContainsTypeVar(id, tv TypeID) bool {
	if id == tv {
		return true
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindArray, KindWildcard:
		return in.ContainsTypeVar(tt.Elem, tv)
	case KindNarrowed:
		for _, a := range in.args(tt) {
			if in.ContainsTypeVar(a, tv) {
				return true
			}
		}
	}
	return false
}
