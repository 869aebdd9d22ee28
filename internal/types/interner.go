package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitives and the core java.lang types.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Boolean TypeID
	Byte    TypeID
	Short   TypeID
	Char    TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Null    TypeID
	Object  TypeID
	String  TypeID
}

// PrimitiveInfo stores metadata for a primitive type.
type PrimitiveInfo struct {
	Name string
	// Boxed is the wrapper class.
	Boxed TypeID
	// BoxViaFactory selects `Wrapper.valueOf(x)` over `new Wrapper(x)`.
	BoxViaFactory bool
}

// TypeVarInfo stores metadata for a type variable.
type TypeVarInfo struct {
	Name  string
	Bound TypeID
}

// ErrorInfo stores the diagnostic carried by an error node.
type ErrorInfo struct {
	Message string
	Name    string
}

// Interner provides stable TypeIDs. Structural nodes (arrays, narrowed
// classes, wildcards) are hash-consed by descriptor; nominal nodes are
// indexed by canonical name.
//
// An Interner is not safe for concurrent mutation. Once a model is built,
// name and package queries may run concurrently.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	byName   map[string]TypeID
	builtins Builtins

	prims    []PrimitiveInfo
	classes  []ClassInfo
	typeVars []TypeVarInfo
	errs     []ErrorInfo
	argLists [][]TypeID
	argIndex map[string]uint32

	unboxed map[TypeID]TypeID
	primsBy map[string]TypeID
}

// NewInterner constructs an interner seeded with primitives and java.lang roots.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[typeKey]TypeID, 64),
		byName:   make(map[string]TypeID, 64),
		argIndex: make(map[string]uint32, 16),
		unboxed:  make(map[TypeID]TypeID, 9),
		primsBy:  make(map[string]TypeID, 9),
	}
	// reserve 0 as invalid sentinel in every side table
	in.prims = append(in.prims, PrimitiveInfo{})
	in.classes = append(in.classes, ClassInfo{})
	in.typeVars = append(in.typeVars, TypeVarInfo{})
	in.errs = append(in.errs, ErrorInfo{})
	in.argLists = append(in.argLists, nil)

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Object = in.MustRef("java.lang.Object")
	in.builtins.String = in.MustRef("java.lang.String")
	in.builtins.Null = in.internRaw(Type{Kind: KindNull})

	in.builtins.Void = in.addPrimitive("void", "java.lang.Void", false)
	in.builtins.Boolean = in.addPrimitive("boolean", "java.lang.Boolean", true)
	in.builtins.Byte = in.addPrimitive("byte", "java.lang.Byte", true)
	in.builtins.Short = in.addPrimitive("short", "java.lang.Short", true)
	in.builtins.Char = in.addPrimitive("char", "java.lang.Character", true)
	in.builtins.Int = in.addPrimitive("int", "java.lang.Integer", true)
	in.builtins.Long = in.addPrimitive("long", "java.lang.Long", true)
	in.builtins.Float = in.addPrimitive("float", "java.lang.Float", true)
	in.builtins.Double = in.addPrimitive("double", "java.lang.Double", true)
	return in
}

// Builtins returns TypeIDs for primitives and core classes.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

func (in *Interner) addPrimitive(name, wrapper string, factory bool) TypeID {
	boxed := in.MustRef(wrapper)
	slot := appendSlot(&in.prims, PrimitiveInfo{Name: name, Boxed: boxed, BoxViaFactory: factory})
	id := in.internRaw(Type{Kind: KindPrimitive, Payload: slot})
	in.unboxed[boxed] = id
	in.primsBy[name] = id
	return id
}

// Primitive returns the primitive type with the given keyword.
func (in *Interner) Primitive(name string) (TypeID, bool) {
	id, ok := in.primsBy[name]
	return id, ok
}

// Intern ensures the provided structural descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// internArgs returns the slot of an interned type-argument list.
func (in *Interner) internArgs(args []TypeID) uint32 {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	key := sb.String()
	if slot, ok := in.argIndex[key]; ok {
		return slot
	}
	slot := appendSlot(&in.argLists, cloneTypeArgs(args))
	in.argIndex[key] = slot
	return slot
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf reports the kind of id, KindInvalid for unknown handles.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// PrimitiveInfo returns metadata for a primitive TypeID.
func (in *Interner) PrimitiveInfo(id TypeID) (*PrimitiveInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindPrimitive || tt.Payload == 0 || int(tt.Payload) >= len(in.prims) {
		return nil, false
	}
	return &in.prims[tt.Payload], true
}

// TypeVarInfo returns metadata for a type variable.
func (in *Interner) TypeVarInfo(id TypeID) (*TypeVarInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeVar || tt.Payload == 0 || int(tt.Payload) >= len(in.typeVars) {
		return nil, false
	}
	return &in.typeVars[tt.Payload], true
}

// NewTypeVar allocates a fresh type variable. Each call yields a distinct
// node even for equal names.
func (in *Interner) NewTypeVar(name string, bound TypeID) TypeID {
	slot := appendSlot(&in.typeVars, TypeVarInfo{Name: name, Bound: bound})
	return in.internRaw(Type{Kind: KindTypeVar, Payload: slot})
}

// SetTypeVarBound replaces the upper bound of a type variable.
func (in *Interner) SetTypeVarBound(id, bound TypeID) {
	if info, ok := in.TypeVarInfo(id); ok {
		info.Bound = bound
	}
}

func (in *Interner) args(tt Type) []TypeID {
	if tt.Kind != KindNarrowed || tt.Payload == 0 || int(tt.Payload) >= len(in.argLists) {
		return nil
	}
	return in.argLists[tt.Payload]
}

func appendSlot[T any](table *[]T, v T) uint32 {
	slot, err := safecast.Conv[uint32](len(*table))
	if err != nil {
		panic(fmt.Errorf("side table overflow: %w", err))
	}
	*table = append(*table, v)
	return slot
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeID, len(args))
	copy(out, args)
	return out
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Bound   BoundMode
	Payload uint32
}
