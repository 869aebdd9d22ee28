package format

import "jcodemodel/internal/types"

// CloseTypeArgs stands for the `>` that closes a type-argument list. It is
// printed as '>' but never gets the spacing of the greater-than operator.
const CloseTypeArgs rune = '\uFFFF'

// Formatter is the traversal contract shared by the collecting, printing
// and error-finding passes. Nodes call it at every point where the printer
// would emit text; only the printing pass produces output.
type Formatter interface {
	// Print emits a token.
	Print(s string)
	// PrintRune emits a single character, including CloseTypeArgs.
	PrintRune(r rune)
	// Raw emits comment or verbatim text with no token spacing.
	Raw(s string)
	// Type emits a reference to a type node.
	Type(id types.TypeID)
	// ID emits a plain identifier (variable, method, field or type-variable name).
	ID(name string)
	Newline()
	Indent()
	Outdent()
	// Types returns the interner the tree was built with.
	Types() *types.Interner
	// Printing reports whether this pass produces text.
	Printing() bool
}

// Generable emits a reference to itself.
type Generable interface {
	Generate(f Formatter)
}

// Declaration emits its full declaration.
type Declaration interface {
	Declare(f Formatter)
}

// Statement emits itself as a statement.
type Statement interface {
	State(f Formatter)
}

// GenerateFunc adapts a function to Generable.
type GenerateFunc func(f Formatter)

func (fn GenerateFunc) Generate(f Formatter) { fn(f) }

// TypeRef wraps a TypeID as a Generable.
type TypeRef types.TypeID

func (t TypeRef) Generate(f Formatter) { GenerateType(f, types.TypeID(t)) }

// GenerateType emits a type reference through f. Classes, direct and error
// nodes go through f.Type so that they take part in import decisions; type
// variables are identifiers.
func GenerateType(f Formatter, id types.TypeID) {
	in := f.Types()
	tt := in.MustLookup(id)
	switch tt.Kind {
	case types.KindClass, types.KindDirect, types.KindError:
		f.Type(id)
	case types.KindPrimitive, types.KindNull:
		f.Print(in.Name(id))
	case types.KindTypeVar:
		f.ID(in.Name(id))
	case types.KindArray:
		GenerateType(f, tt.Elem)
		f.Print("[]")
	case types.KindNarrowed:
		f.Type(tt.Elem)
		f.PrintRune('<')
		for i, arg := range in.TypeArgs(id) {
			if i > 0 {
				f.PrintRune(',')
			}
			GenerateType(f, arg)
		}
		f.PrintRune(CloseTypeArgs)
	case types.KindWildcard:
		if tt.Bound == types.BoundSuper {
			f.Print("? super")
		} else if tt.Elem == in.Builtins().Object {
			f.PrintRune('?')
			return
		} else {
			f.Print("? extends")
		}
		GenerateType(f, tt.Elem)
	default:
		panic("format: invalid TypeID")
	}
}

// GenerateList emits items separated by commas.
func GenerateList[T Generable](f Formatter, items []T) {
	for i, item := range items {
		if i > 0 {
			f.PrintRune(',')
		}
		item.Generate(f)
	}
}

// GenerateTypes emits type references separated by commas.
func GenerateTypes(f Formatter, ids []types.TypeID) {
	for i, id := range ids {
		if i > 0 {
			f.PrintRune(',')
		}
		GenerateType(f, id)
	}
}
