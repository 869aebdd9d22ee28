package codemodel

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"jcodemodel/internal/format"
	"jcodemodel/internal/types"
)

// Expr is anything that can appear where Java expects an expression.
type Expr interface {
	format.Generable
}

// atom is an expression printed as a single token.
type atom string

func (a atom) Generate(f format.Formatter) { f.Print(string(a)) }

var (
	exprNull  = atom("null")
	exprThis  = atom("this")
	exprSuper = atom("super")
	exprTrue  = atom("true")
	exprFalse = atom("false")
)

func Null() Expr  { return exprNull }
func This() Expr  { return exprThis }
func Super() Expr { return exprSuper }

// Lit returns an int literal.
func Lit(v int) Expr { return atom(strconv.Itoa(v)) }

// LitLong returns a long literal with the L suffix.
func LitLong(v int64) Expr { return atom(strconv.FormatInt(v, 10) + "L") }

// LitBool returns true or false.
func LitBool(v bool) Expr {
	if v {
		return exprTrue
	}
	return exprFalse
}

// LitFloat returns a float literal. NaN and the infinities print as the
// corresponding constants of java.lang.Float.
func LitFloat(v float32) Expr { return floatLit{v: float64(v), bits: 32} }

// LitDouble returns a double literal.
func LitDouble(v float64) Expr { return floatLit{v: v, bits: 64} }

type floatLit struct {
	v    float64
	bits int
}

func (l floatLit) Generate(f format.Formatter) {
	in := f.Types()
	prim, suffix := in.Builtins().Double, "D"
	if l.bits == 32 {
		prim, suffix = in.Builtins().Float, "F"
	}
	var constant string
	switch {
	case math.IsNaN(l.v):
		constant = "NaN"
	case math.IsInf(l.v, 1):
		constant = "POSITIVE_INFINITY"
	case math.IsInf(l.v, -1):
		constant = "NEGATIVE_INFINITY"
	default:
		f.Print(strconv.FormatFloat(l.v, 'g', -1, l.bits) + suffix)
		return
	}
	f.Type(in.Boxify(prim))
	f.PrintRune('.')
	f.Print(constant)
}

// LitChar returns a char literal.
func LitChar(r rune) Expr { return atom(quote('\'', string(r))) }

// Str returns a string literal.
func Str(s string) Expr { return atom(quote('"', s)) }

// quote renders s as a Java literal delimited by q. Characters outside
// printable ASCII are written as \uXXXX escapes of their UTF-16 units.
func quote(q rune, s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteRune(q)
	for _, r := range s {
		switch r {
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		case '"', '\'':
			if r == q {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		default:
			if r >= 0x20 && r <= 0x7e {
				sb.WriteRune(r)
				continue
			}
			for _, unit := range utf16.Encode([]rune{r}) {
				sb.WriteString(`\u`)
				hex := strconv.FormatUint(uint64(unit), 16)
				sb.WriteString(strings.Repeat("0", 4-len(hex)))
				sb.WriteString(hex)
			}
		}
	}
	sb.WriteRune(q)
	return sb.String()
}

// Ident refers to a variable by name.
func Ident(name string) Expr { return ident(name) }

type ident string

func (i ident) Generate(f format.Formatter) { f.ID(string(i)) }

// FieldRef returns obj.name. A nil obj yields an unqualified reference.
func FieldRef(obj Expr, name string) Expr { return fieldRef{obj: obj, name: name} }

// ThisRef returns this.name.
func ThisRef(name string) Expr { return fieldRef{obj: exprThis, name: name} }

// StaticRef returns Type.name.
func StaticRef(t types.TypeID, name string) Expr { return fieldRef{typ: t, name: name} }

type fieldRef struct {
	obj  Expr
	typ  types.TypeID
	name string
}

func (r fieldRef) Generate(f format.Formatter) {
	switch {
	case r.typ != types.NoTypeID:
		format.GenerateType(f, r.typ)
		f.PrintRune('.')
	case r.obj != nil:
		r.obj.Generate(f)
		f.PrintRune('.')
	}
	f.ID(r.name)
}

// EnumRef returns Type.CONSTANT.
func EnumRef(t types.TypeID, constant string) Expr { return enumRef{typ: t, name: constant} }

type enumRef struct {
	typ  types.TypeID
	name string
}

func (r enumRef) Generate(f format.Formatter) {
	f.Type(r.typ)
	f.PrintRune('.')
	f.Print(r.name)
}

// Invocation is a method call or an instance creation.
type Invocation struct {
	obj    Expr
	typ    types.TypeID
	isNew  bool
	method string
	args   []Expr
	anon   *DefinedClass
}

// Invoke returns obj.method(). A nil obj calls method unqualified.
func Invoke(obj Expr, method string) *Invocation {
	return &Invocation{obj: obj, method: method}
}

// Call returns method(), unqualified.
func Call(method string) *Invocation { return &Invocation{method: method} }

// InvokeStatic returns Type.method().
func InvokeStatic(t types.TypeID, method string) *Invocation {
	return &Invocation{typ: t, method: method}
}

// New returns new Type().
func New(t types.TypeID) *Invocation { return &Invocation{typ: t, isNew: true} }

// Arg appends an argument.
func (inv *Invocation) Arg(e Expr) *Invocation {
	inv.args = append(inv.args, e)
	return inv
}

// Args appends arguments.
func (inv *Invocation) Args(es ...Expr) *Invocation {
	inv.args = append(inv.args, es...)
	return inv
}

func (inv *Invocation) Generate(f format.Formatter) {
	switch {
	case inv.isNew:
		f.Print("new")
		format.GenerateType(f, inv.typ)
	case inv.typ != types.NoTypeID:
		format.GenerateType(f, inv.typ)
		f.PrintRune('.')
		f.ID(inv.method)
	case inv.obj != nil:
		inv.obj.Generate(f)
		f.PrintRune('.')
		f.ID(inv.method)
	default:
		f.ID(inv.method)
	}
	f.PrintRune('(')
	format.GenerateList(f, inv.args)
	f.PrintRune(')')
	if inv.anon != nil {
		inv.anon.generateAnonymousBody(f)
	}
}

// State prints the invocation as an expression statement.
func (inv *Invocation) State(f format.Formatter) {
	inv.Generate(f)
	f.PrintRune(';')
	f.Newline()
}

// NewArray returns new T[size]. For multi-dimensional element types the
// sized dimension comes first: NewArray(int[], n) prints new int[n][].
func NewArray(elem types.TypeID, size Expr) Expr { return newArray{elem: elem, size: size} }

type newArray struct {
	elem types.TypeID
	size Expr
}

func (a newArray) Generate(f format.Formatter) {
	in := f.Types()
	base, dims := a.elem, 0
	for {
		e, ok := in.ElementType(base)
		if !ok {
			break
		}
		base = e
		dims++
	}
	f.Print("new")
	format.GenerateType(f, base)
	f.PrintRune('[')
	a.size.Generate(f)
	f.PrintRune(']')
	for range dims {
		f.Print("[]")
	}
}

// ArrayLit returns new T[] {items...}.
func ArrayLit(elem types.TypeID, items ...Expr) Expr { return arrayLit{elem: elem, items: items} }

type arrayLit struct {
	elem  types.TypeID
	items []Expr
}

func (a arrayLit) Generate(f format.Formatter) {
	f.Print("new")
	format.GenerateType(f, a.elem)
	f.Print("[]")
	f.PrintRune('{')
	format.GenerateList(f, a.items)
	f.PrintRune('}')
}

// Component returns arr[index].
func Component(arr, index Expr) Expr { return component{arr: arr, index: index} }

type component struct{ arr, index Expr }

func (c component) Generate(f format.Formatter) {
	c.arr.Generate(f)
	f.PrintRune('[')
	c.index.Generate(f)
	f.PrintRune(']')
}

// Cast returns ((T) e).
func Cast(t types.TypeID, e Expr) Expr { return cast{typ: t, e: e} }

type cast struct {
	typ types.TypeID
	e   Expr
}

func (c cast) Generate(f format.Formatter) {
	f.PrintRune('(')
	f.PrintRune('(')
	format.GenerateType(f, c.typ)
	f.PrintRune(')')
	c.e.Generate(f)
	f.PrintRune(')')
}

// DotClass returns T.class for the erasure of t.
func DotClass(t types.TypeID) Expr { return dotClass(t) }

type dotClass types.TypeID

func (d dotClass) Generate(f format.Formatter) {
	format.GenerateType(f, f.Types().Erasure(types.TypeID(d)))
	f.Print(".class")
}

type unary struct {
	op      string
	e       Expr
	postfix bool
}

func (u unary) Generate(f format.Formatter) {
	if u.postfix {
		u.e.Generate(f)
		f.Raw(u.op)
		return
	}
	f.PrintRune('(')
	f.Raw(u.op)
	u.e.Generate(f)
	f.PrintRune(')')
}

func Not(e Expr) Expr        { return unary{op: "!", e: e} }
func Neg(e Expr) Expr        { return unary{op: "-", e: e} }
func Complement(e Expr) Expr { return unary{op: "~", e: e} }

// Incr returns e++.
func Incr(e Expr) Expr { return unary{op: "++", e: e, postfix: true} }

// Decr returns e--.
func Decr(e Expr) Expr { return unary{op: "--", e: e, postfix: true} }

type binary struct {
	left  Expr
	op    string
	right Expr
}

// Generate prints (left op right). Operators are written raw so that
// comparison operators never glue to their operands.
func (b binary) Generate(f format.Formatter) {
	f.PrintRune('(')
	b.left.Generate(f)
	f.Raw(" " + b.op + " ")
	b.right.Generate(f)
	f.PrintRune(')')
}

// Op returns (left op right) for any binary operator.
func Op(left Expr, op string, right Expr) Expr { return binary{left, op, right} }

func Plus(l, r Expr) Expr  { return binary{l, "+", r} }
func Minus(l, r Expr) Expr { return binary{l, "-", r} }
func Mul(l, r Expr) Expr   { return binary{l, "*", r} }
func Div(l, r Expr) Expr   { return binary{l, "/", r} }
func Mod(l, r Expr) Expr   { return binary{l, "%", r} }
func Eq(l, r Expr) Expr    { return binary{l, "==", r} }
func Ne(l, r Expr) Expr    { return binary{l, "!=", r} }
func Lt(l, r Expr) Expr    { return binary{l, "<", r} }
func Le(l, r Expr) Expr    { return binary{l, "<=", r} }
func Gt(l, r Expr) Expr    { return binary{l, ">", r} }
func Ge(l, r Expr) Expr    { return binary{l, ">=", r} }
func And(l, r Expr) Expr   { return binary{l, "&&", r} }
func Or(l, r Expr) Expr    { return binary{l, "||", r} }

// InstanceOf returns (e instanceof T).
func InstanceOf(e Expr, t types.TypeID) Expr {
	return binary{e, "instanceof", format.TypeRef(t)}
}

// Cond returns (test ? then : otherwise).
func Cond(test, then, otherwise Expr) Expr { return ternary{test, then, otherwise} }

type ternary struct{ test, then, otherwise Expr }

func (t ternary) Generate(f format.Formatter) {
	f.PrintRune('(')
	t.test.Generate(f)
	f.Raw(" ? ")
	t.then.Generate(f)
	f.Raw(" : ")
	t.otherwise.Generate(f)
	f.PrintRune(')')
}

// Wrap boxes e of primitive type prim: Integer.valueOf(e), or a constructor
// call for wrappers without a valueOf factory.
func Wrap(prim types.TypeID, e Expr) Expr { return wrap{prim: prim, e: e} }

type wrap struct {
	prim types.TypeID
	e    Expr
}

func (w wrap) Generate(f format.Formatter) {
	info, ok := f.Types().PrimitiveInfo(w.prim)
	if !ok {
		w.e.Generate(f)
		return
	}
	if info.BoxViaFactory {
		InvokeStatic(info.Boxed, "valueOf").Arg(w.e).Generate(f)
		return
	}
	New(info.Boxed).Arg(w.e).Generate(f)
}

// Unwrap returns e.intValue() and friends for primitive type prim.
func Unwrap(prim types.TypeID, e Expr) Expr { return unwrap{prim: prim, e: e} }

type unwrap struct {
	prim types.TypeID
	e    Expr
}

func (u unwrap) Generate(f format.Formatter) {
	Invoke(u.e, f.Types().Name(u.prim)+"Value").Generate(f)
}

// isBinary reports whether e already prints its own parentheses.
func isBinary(e Expr) bool {
	_, ok := e.(binary)
	return ok
}
