package codemodel

import (
	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/javaname"
	"jcodemodel/internal/types"
)

// ErrMixedLambdaParams is returned when a lambda mixes typed and untyped
// parameters.
var ErrMixedLambdaParams = errors.New("codemodel: lambda parameters must all be typed or all untyped")

// Lambda is a lambda expression. Its body is either a single expression
// or a block.
type Lambda struct {
	params []*Var
	expr   Expr
	body   *Block
}

// NewLambda returns an empty lambda; give it a body with Returns or Body.
func NewLambda() *Lambda { return &Lambda{} }

// LambdaExpr returns `() -> e`.
func LambdaExpr(e Expr) *Lambda { return &Lambda{expr: e} }

// Param adds a parameter. A NoTypeID type leaves it untyped.
func (l *Lambda) Param(t types.TypeID, name string) (*Var, error) {
	for _, p := range l.params {
		if p.name == name {
			return nil, duplicate("lambda parameter", name, "lambda")
		}
		if (p.typ == types.NoTypeID) != (t == types.NoTypeID) {
			return nil, errors.Wrapf(ErrMixedLambdaParams, "parameter %s", name)
		}
	}
	if t == types.NoTypeID {
		if err := javaname.CheckIdentifier(name); err != nil {
			return nil, errors.Wrap(err, "codemodel: lambda parameter")
		}
		v := &Var{name: name}
		l.params = append(l.params, v)
		return v, nil
	}
	v, err := newVar(ModNone, t, name, nil, targetLocal)
	if err != nil {
		return nil, err
	}
	l.params = append(l.params, v)
	return v, nil
}

// Returns makes the body the single expression e.
func (l *Lambda) Returns(e Expr) *Lambda {
	l.expr, l.body = e, nil
	return l
}

// Body makes the body a block and returns it.
func (l *Lambda) Body() *Block {
	if l.body == nil {
		l.body = &Block{}
		l.expr = nil
	}
	return l.body
}

func (l *Lambda) Generate(f format.Formatter) {
	switch {
	case len(l.params) == 1 && l.params[0].typ == types.NoTypeID:
		f.ID(l.params[0].name)
	default:
		f.PrintRune('(')
		for i, p := range l.params {
			if i > 0 {
				f.PrintRune(',')
			}
			if p.typ != types.NoTypeID {
				format.GenerateType(f, p.typ)
			}
			f.ID(p.name)
		}
		f.PrintRune(')')
	}
	f.Raw(" -> ")
	switch {
	case l.expr != nil:
		l.expr.Generate(f)
	case l.body != nil:
		l.body.Generate(f)
	default:
		f.Raw("{}")
	}
}

// MethodRef returns obj::method.
func MethodRef(obj Expr, method string) Expr { return methodRef{obj: obj, method: method} }

// StaticMethodRef returns Type::method.
func StaticMethodRef(t types.TypeID, method string) Expr { return methodRef{typ: t, method: method} }

// ConstructorRef returns Type::new.
func ConstructorRef(t types.TypeID) Expr { return methodRef{typ: t, method: "new"} }

type methodRef struct {
	obj    Expr
	typ    types.TypeID
	method string
}

func (r methodRef) Generate(f format.Formatter) {
	if r.obj != nil {
		r.obj.Generate(f)
	} else {
		format.GenerateType(f, r.typ)
	}
	f.Raw("::")
	f.Raw(r.method)
}
