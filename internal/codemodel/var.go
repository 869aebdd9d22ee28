package codemodel

import (
	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/javaname"
	"jcodemodel/internal/types"
)

// Var is a local variable, a parameter or (through FieldVar) a field.
// Used as an expression it prints its name.
type Var struct {
	annotations
	mods Mods
	typ  types.TypeID
	name string
	init Expr
}

func newVar(mods Mods, t types.TypeID, name string, init Expr, target modTarget) (*Var, error) {
	if err := javaname.CheckIdentifier(name); err != nil {
		return nil, errors.Wrapf(err, "codemodel: %s", targetNames[target])
	}
	if t == types.NoTypeID {
		return nil, errors.Newf("codemodel: %s %s has no type", targetNames[target], name)
	}
	if err := mods.check(target, name); err != nil {
		return nil, err
	}
	return &Var{mods: mods, typ: t, name: name, init: init}, nil
}

func (v *Var) Name() string       { return v.name }
func (v *Var) Type() types.TypeID { return v.typ }
func (v *Var) Mods() Mods         { return v.mods }

// Init sets the initializer.
func (v *Var) Init(e Expr) *Var {
	v.init = e
	return v
}

func (v *Var) Generate(f format.Formatter) { f.ID(v.name) }

// bind prints `mods Type name = init` without a terminator.
func (v *Var) bind(f format.Formatter) {
	v.mods.Generate(f)
	format.GenerateType(f, v.typ)
	f.ID(v.name)
	if v.init != nil {
		f.PrintRune('=')
		v.init.Generate(f)
	}
}

// State declares the variable as a local statement.
func (v *Var) State(f format.Formatter) {
	v.declareInline(f)
	v.bind(f)
	f.PrintRune(';')
	f.Newline()
}

// FieldVar is a field of a defined class.
type FieldVar struct {
	Var
	documented
	owner *DefinedClass
}

// Owner returns the declaring class.
func (fv *FieldVar) Owner() *DefinedClass { return fv.owner }

// Ref returns this.name, which is needed when a parameter shadows the field.
func (fv *FieldVar) Ref() Expr { return ThisRef(fv.name) }

func (fv *FieldVar) Declare(f format.Formatter) {
	fv.declareDoc(f)
	fv.declareOwnLines(f)
	fv.bind(f)
	f.PrintRune(';')
	f.Newline()
}
