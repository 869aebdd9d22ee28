package types

// SubstituteParams replaces occurrences of vars[i] with bindings[i].
// Variables without a binding (fewer bindings than variables) are left in
// place. When nothing changes the input TypeID is returned unchanged.
func (in *Interner) SubstituteParams(id TypeID, vars, bindings []TypeID) TypeID {
	tt := in.MustLookup(id)
	switch tt.Kind {
	case KindTypeVar:
		for i, v := range vars {
			if v == id {
				if i < len(bindings) {
					return bindings[i]
				}
				return id
			}
		}
		return id
	case KindArray:
		elem := in.SubstituteParams(tt.Elem, vars, bindings)
		if elem == tt.Elem {
			return id
		}
		return in.Array(elem)
	case KindWildcard:
		bound := in.SubstituteParams(tt.Elem, vars, bindings)
		if bound == tt.Elem {
			return id
		}
		return in.Intern(MakeWildcard(in.Boxify(bound), tt.Bound))
	case KindNarrowed:
		args := in.args(tt)
		var changed []TypeID
		for i, a := range args {
			sub := in.SubstituteParams(a, vars, bindings)
			if sub != a && changed == nil {
				changed = cloneTypeArgs(args)
			}
			if changed != nil {
				changed[i] = sub
			}
		}
		if changed == nil {
			return id
		}
		return in.Intern(makeNarrowed(tt.Elem, in.internArgs(boxAll(in, changed))))
	default:
		return id
	}
}

func boxAll(in *Interner, ids []TypeID) []TypeID {
	for i, id := range ids {
		ids[i] = in.Boxify(id)
	}
	return ids
}

// BaseClass searches the supertype lattice of id depth-first (self,
// superclass, then interfaces in declaration order) for a type whose
// erasure is the erasure of target. The match is returned in its narrowed
// form, so BaseClass(ArrayList<String>, Collection) is Collection<String>.
func (in *Interner) BaseClass(id, target TypeID) (TypeID, bool) {
	in.mustNotBeError(in.MustLookup(id))
	in.mustNotBeError(in.MustLookup(target))
	want := in.Erasure(target)
	seen := make(map[TypeID]struct{}, 8)
	return in.baseClass(id, want, seen)
}

func (in *Interner) baseClass(id, want TypeID, seen map[TypeID]struct{}) (TypeID, bool) {
	if _, ok := seen[id]; ok {
		return NoTypeID, false
	}
	seen[id] = struct{}{}
	if in.Erasure(id) == want {
		return id, true
	}
	if sup, ok := in.Super(id); ok {
		if found, ok := in.baseClass(sup, want, seen); ok {
			return found, true
		}
	}
	for _, iface := range in.Interfaces(id) {
		if found, ok := in.baseClass(iface, want, seen); ok {
			return found, true
		}
	}
	return NoTypeID, false
}

// IsAssignableFrom reports whether a value of type rhs can be assigned to
// a variable of type lhs, allowing unchecked raw-to-parameterized conversion.
func (in *Interner) IsAssignableFrom(lhs, rhs TypeID) bool {
	return in.isAssignableFrom(lhs, rhs, true)
}

// IsAssignableFromUnchecked is IsAssignableFrom with explicit control over
// raw-type unchecked conversion.
func (in *Interner) IsAssignableFromUnchecked(lhs, rhs TypeID, allowRaw bool) bool {
	return in.isAssignableFrom(lhs, rhs, allowRaw)
}

func (in *Interner) isAssignableFrom(lhs, rhs TypeID, allowRaw bool) bool {
	if in.IsError(lhs) || in.IsError(rhs) {
		return false
	}
	if lhs == rhs {
		return true
	}
	lt := in.MustLookup(lhs)
	rt := in.MustLookup(rhs)
	if lt.Kind == KindPrimitive || rt.Kind == KindPrimitive || lt.Kind == KindNull {
		return false
	}
	if lhs == in.builtins.Object || rt.Kind == KindNull {
		return true
	}
	if lt.Kind == KindArray && rt.Kind == KindArray {
		return in.isAssignableFrom(lt.Elem, rt.Elem, false)
	}
	if in.Erasure(lhs) == in.Erasure(rhs) {
		if !in.IsParameterized(lhs) {
			return true
		}
		if !in.IsParameterized(rhs) {
			return allowRaw
		}
		return in.argsCompatible(in.args(lt), in.args(rt), allowRaw)
	}
	if sup, ok := in.Super(rhs); ok && in.isAssignableFrom(lhs, sup, allowRaw) {
		return true
	}
	for _, iface := range in.Interfaces(rhs) {
		if in.isAssignableFrom(lhs, iface, allowRaw) {
			return true
		}
	}
	return false
}

func (in *Interner) argsCompatible(lhs, rhs []TypeID, allowRaw bool) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	for i := range lhs {
		if !in.argCompatible(lhs[i], rhs[i], allowRaw) {
			return false
		}
	}
	return true
}

func (in *Interner) argCompatible(l, r TypeID, allowRaw bool) bool {
	lt := in.MustLookup(l)
	rt := in.MustLookup(r)
	if lt.Kind != KindWildcard {
		return l == r
	}
	if rt.Kind == KindWildcard {
		if rt.Bound != lt.Bound {
			return false
		}
		if lt.Bound == BoundExtends {
			return in.isAssignableFrom(lt.Elem, rt.Elem, allowRaw)
		}
		return in.isAssignableFrom(rt.Elem, lt.Elem, allowRaw)
	}
	if lt.Bound == BoundExtends {
		return in.isAssignableFrom(lt.Elem, r, allowRaw)
	}
	return in.isAssignableFrom(r, lt.Elem, allowRaw)
}
