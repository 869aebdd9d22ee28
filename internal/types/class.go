package types

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/javaname"
)

// ClassInfo stores metadata for a class or direct node.
type ClassInfo struct {
	Name       string
	Package    string
	Outer      TypeID
	Kind       ClassKind
	Abstract   bool
	Final      bool
	Super      TypeID
	Interfaces []TypeID
	TypeParams []TypeID

	// catalog entries resolve their hierarchy on first use
	pending *catalogEntry
}

// ClassSpec describes a class to be defined in the interner.
type ClassSpec struct {
	Name    string
	Package string
	// Outer makes the class nested; Package is then taken from the outer class.
	Outer    TypeID
	Kind     ClassKind
	Abstract bool
	Final    bool
}

var (
	// ErrDuplicateClass is returned when a canonical name is defined twice.
	ErrDuplicateClass = errors.New("types: class already defined")
	// ErrNotNarrowable is returned when narrowing a node that is not a class.
	ErrNotNarrowable = errors.New("types: type cannot be narrowed")
	// ErrNotClass is returned by class-only mutators.
	ErrNotClass = errors.New("types: not a class")
)

// DefineClass registers a class declared by the caller. The superclass
// defaults to java.lang.Object, or java.lang.Enum<Self> for enums.
func (in *Interner) DefineClass(spec ClassSpec) (TypeID, error) {
	if err := javaname.CheckIdentifier(spec.Name); err != nil {
		return NoTypeID, errors.Wrap(err, "types: define class")
	}
	pkg := spec.Package
	if spec.Outer != NoTypeID {
		outer, ok := in.classInfo(spec.Outer)
		if !ok || in.KindOf(spec.Outer) != KindClass {
			return NoTypeID, errors.Wrapf(ErrNotClass, "outer of %s", spec.Name)
		}
		pkg = outer.Package
	} else if pkg != "" {
		if err := javaname.CheckPackage(pkg); err != nil {
			return NoTypeID, errors.Wrap(err, "types: define class")
		}
	}
	fqn := in.qualify(pkg, spec.Outer, spec.Name)
	info := ClassInfo{
		Name:     spec.Name,
		Package:  pkg,
		Outer:    spec.Outer,
		Kind:     spec.Kind,
		Abstract: spec.Abstract || spec.Kind == ClassKindInterface,
		Final:    spec.Final,
	}
	var id TypeID
	if prev, exists := in.byName[fqn]; exists {
		if in.types[prev].Kind != KindDirect {
			return NoTypeID, errors.WithHint(
				errors.Wrapf(ErrDuplicateClass, "%s", fqn),
				"refer to the existing class instead of defining it again")
		}
		id = in.promote(prev, info)
	} else {
		id = in.addClass(KindClass, info, fqn)
	}
	super := in.builtins.Object
	if spec.Kind == ClassKindEnum {
		super = in.MustNarrow(in.MustRef("java.lang.Enum"), id)
	}
	in.classes[in.types[id].Payload].Super = super
	return id, nil
}

// Direct returns a class node known only by its canonical name.
func (in *Interner) Direct(fqn string) TypeID {
	if id, ok := in.byName[fqn]; ok {
		return id
	}
	pkg, name := splitName(fqn)
	return in.addClass(KindDirect, ClassInfo{Name: name, Package: pkg, Super: in.builtins.Object}, fqn)
}

// Named returns the class registered under fqn without creating one.
func (in *Interner) Named(fqn string) (TypeID, bool) {
	id, ok := in.byName[fqn]
	return id, ok
}

// SetSuper replaces the superclass of a defined class.
func (in *Interner) SetSuper(cls, super TypeID) error {
	info, err := in.definedInfo(cls)
	if err != nil {
		return err
	}
	if in.KindOf(super) == KindPrimitive || in.KindOf(super) == KindArray {
		return errors.Newf("types: %s cannot extend %s", in.FullName(cls), in.FullName(super))
	}
	info.Super = super
	return nil
}

// AddInterface appends an implemented (or, for interfaces, extended) interface.
func (in *Interner) AddInterface(cls, iface TypeID) error {
	info, err := in.definedInfo(cls)
	if err != nil {
		return err
	}
	if slices.Contains(info.Interfaces, iface) {
		return nil
	}
	info.Interfaces = append(info.Interfaces, iface)
	return nil
}

// AddTypeParam declares a new type parameter on a defined class.
func (in *Interner) AddTypeParam(cls TypeID, name string, bound TypeID) (TypeID, error) {
	info, err := in.definedInfo(cls)
	if err != nil {
		return NoTypeID, err
	}
	if err := javaname.CheckIdentifier(name); err != nil {
		return NoTypeID, errors.Wrap(err, "types: type parameter")
	}
	for _, tv := range info.TypeParams {
		if in.typeVars[in.types[tv].Payload].Name == name {
			return NoTypeID, errors.Newf("types: type parameter %s already declared on %s", name, in.FullName(cls))
		}
	}
	tv := in.NewTypeVar(name, bound)
	info.TypeParams = append(info.TypeParams, tv)
	return tv, nil
}

// ClassInfo returns metadata for a class or direct TypeID.
func (in *Interner) ClassInfo(id TypeID) (*ClassInfo, bool) {
	info, ok := in.classInfo(id)
	if !ok {
		return nil, false
	}
	in.resolvePending(info)
	info, _ = in.classInfo(id)
	return info, true
}

func (in *Interner) definedInfo(cls TypeID) (*ClassInfo, error) {
	if in.KindOf(cls) != KindClass {
		return nil, errors.Wrapf(ErrNotClass, "TypeID %d", cls)
	}
	info, _ := in.ClassInfo(cls)
	return info, nil
}

func (in *Interner) classInfo(id TypeID) (*ClassInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindClass && tt.Kind != KindDirect) {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.classes) {
		return nil, false
	}
	return &in.classes[tt.Payload], true
}

func (in *Interner) addClass(kind Kind, info ClassInfo, fqn string) TypeID {
	slot := appendSlot(&in.classes, info)
	id := in.internRaw(Type{Kind: kind, Payload: slot})
	in.byName[fqn] = id
	return id
}

// promote turns a direct placeholder into a defined class in place, so
// handles taken before the definition stay valid.
func (in *Interner) promote(id TypeID, info ClassInfo) TypeID {
	tt := in.types[id]
	delete(in.index, typeKey(tt))
	in.classes[tt.Payload] = info
	tt.Kind = KindClass
	in.types[id] = tt
	in.index[typeKey(tt)] = id
	return id
}

func (in *Interner) qualify(pkg string, outer TypeID, name string) string {
	if outer != NoTypeID {
		return in.FullName(outer) + "." + name
	}
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// splitName splits a canonical name at its last dot.
func splitName(fqn string) (pkg, name string) {
	idx := strings.LastIndexByte(fqn, '.')
	if idx < 0 {
		return "", fqn
	}
	return fqn[:idx], fqn[idx+1:]
}
