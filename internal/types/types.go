package types

import "fmt"

// TypeID uniquely identifies a type node inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the variants of the type algebra.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindClass
	KindDirect
	KindTypeVar
	KindNull
	KindError
	KindArray
	KindNarrowed
	KindWildcard
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPrimitive:
		return "primitive"
	case KindClass:
		return "class"
	case KindDirect:
		return "direct"
	case KindTypeVar:
		return "typevar"
	case KindNull:
		return "null"
	case KindError:
		return "error"
	case KindArray:
		return "array"
	case KindNarrowed:
		return "narrowed"
	case KindWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// BoundMode selects the direction of a wildcard bound.
type BoundMode uint8

const (
	BoundExtends BoundMode = iota
	BoundSuper
)

func (b BoundMode) String() string {
	if b == BoundSuper {
		return "super"
	}
	return "extends"
}

// ClassKind is the declaration keyword of a class node.
type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindEnum
	ClassKindAnnotation
)

// Keyword returns the token that introduces the declaration.
func (k ClassKind) Keyword() string {
	switch k {
	case ClassKindInterface:
		return "interface"
	case ClassKindEnum:
		return "enum"
	case ClassKindAnnotation:
		return "@interface"
	default:
		return "class"
	}
}

func (k ClassKind) String() string {
	if k == ClassKindAnnotation {
		return "annotation"
	}
	return k.Keyword()
}

// Type is a compact descriptor for any node of the type algebra.
//
// Elem holds the element of an array, the basis of a narrowed class and
// the bound of a wildcard. Payload indexes the side table matching Kind.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Bound   BoundMode
	Payload uint32
}

// ImplicitPackage is the package whose members never need an import.
const ImplicitPackage = "java.lang"

// Descriptor helpers ---------------------------------------------------------

// MakeArray describes an array of elem.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeWildcard describes `? extends bound` or `? super bound`.
func MakeWildcard(bound TypeID, mode BoundMode) Type {
	return Type{Kind: KindWildcard, Elem: bound, Bound: mode}
}

func makeNarrowed(basis TypeID, argList uint32) Type {
	return Type{Kind: KindNarrowed, Elem: basis, Payload: argList}
}
