package codemodel

import (
	"strings"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/javaname"
	"jcodemodel/internal/types"
)

// Method is a method or constructor of a defined class.
type Method struct {
	annotations
	documented
	owner      *DefinedClass
	mods       Mods
	ret        types.TypeID // NoTypeID for constructors
	name       string
	typeParams []types.TypeID
	params     []*Var
	varParam   *Var
	throws     []types.TypeID
	body       *Block
	defaultVal Expr
}

func (m *Method) Name() string             { return m.name }
func (m *Method) Mods() Mods               { return m.mods }
func (m *Method) ReturnType() types.TypeID { return m.ret }
func (m *Method) Owner() *DefinedClass     { return m.owner }
func (m *Method) Params() []*Var           { return m.params }
func (m *Method) IsConstructor() bool      { return m.ret == types.NoTypeID }

// VarParam returns the trailing varargs parameter, if any.
func (m *Method) VarParam() (*Var, bool) { return m.varParam, m.varParam != nil }

// Param appends a parameter. Parameters may only carry final.
func (m *Method) Param(mods Mods, t types.TypeID, name string) (*Var, error) {
	if m.varParam != nil {
		return nil, errors.Newf("codemodel: %s: parameter %s after varargs", m.where(), name)
	}
	if err := m.checkParamName(name); err != nil {
		return nil, err
	}
	v, err := newVar(mods, t, name, nil, targetLocal)
	if err != nil {
		return nil, err
	}
	m.params = append(m.params, v)
	return v, nil
}

// VarArgs declares the trailing `T... name` parameter. t is the element type.
func (m *Method) VarArgs(mods Mods, t types.TypeID, name string) (*Var, error) {
	if m.varParam != nil {
		return nil, errors.Newf("codemodel: %s already has a varargs parameter", m.where())
	}
	if err := m.checkParamName(name); err != nil {
		return nil, err
	}
	v, err := newVar(mods, t, name, nil, targetLocal)
	if err != nil {
		return nil, err
	}
	m.varParam = v
	return v, nil
}

func (m *Method) checkParamName(name string) error {
	for _, p := range m.params {
		if p.name == name {
			return duplicate("parameter", name, m.where())
		}
	}
	return nil
}

// Generify declares a method type parameter.
func (m *Method) Generify(name string, bound types.TypeID) (types.TypeID, error) {
	if err := javaname.CheckIdentifier(name); err != nil {
		return types.NoTypeID, errors.Wrapf(err, "codemodel: type parameter of %s", m.where())
	}
	in := m.owner.model.in
	for _, tv := range m.typeParams {
		if in.Name(tv) == name {
			return types.NoTypeID, duplicate("type parameter", name, m.where())
		}
	}
	tv := in.NewTypeVar(name, bound)
	m.typeParams = append(m.typeParams, tv)
	return tv, nil
}

// TypeParams returns the declared method type parameters.
func (m *Method) TypeParams() []types.TypeID { return m.typeParams }

// Throws adds an exception to the throws clause.
func (m *Method) Throws(t types.TypeID) *Method {
	for _, x := range m.throws {
		if x == t {
			return m
		}
	}
	m.throws = append(m.throws, t)
	return m
}

// Body returns the method body, creating it on first use.
func (m *Method) Body() *Block {
	if m.body == nil {
		m.body = &Block{}
	}
	return m.body
}

// DeclareDefault sets the default value of an annotation type member.
func (m *Method) DeclareDefault(value Expr) error {
	if m.owner.kind != types.ClassKindAnnotation {
		return errors.Wrapf(ErrWrongKind, "default value on %s", m.where())
	}
	m.defaultVal = value
	return nil
}

// Signature is name(erased parameter types), used to reject duplicates.
func (m *Method) Signature() string {
	in := m.owner.model.in
	var sb strings.Builder
	sb.WriteString(m.name)
	sb.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(in.FullName(in.Erasure(p.typ)))
	}
	if m.varParam != nil {
		if len(m.params) > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(in.FullName(in.Erasure(m.varParam.typ)))
		sb.WriteString("...")
	}
	sb.WriteByte(')')
	return sb.String()
}

func (m *Method) where() string {
	return m.owner.FullName() + "." + m.name
}

// hasBody reports whether the declaration ends in a block rather than ';'.
func (m *Method) hasBody() bool {
	if m.body != nil {
		return true
	}
	if m.mods.Has(ModAbstract) || m.mods.Has(ModNative) {
		return false
	}
	switch m.owner.kind {
	case types.ClassKindInterface:
		return m.mods.Has(ModDefault) || m.mods.Has(ModStatic)
	case types.ClassKindAnnotation:
		return false
	}
	return true
}

func (m *Method) Declare(f format.Formatter) {
	m.declareDoc(f)
	m.declareOwnLines(f)
	m.mods.Generate(f)
	if len(m.typeParams) > 0 {
		if m.mods != ModNone {
			// `public <T>`; a bare '<' after a keyword would glue to it
			f.Raw(" ")
		}
		declareTypeParams(f, m.typeParams)
	}
	if !m.IsConstructor() {
		format.GenerateType(f, m.ret)
	}
	f.ID(m.name)
	f.PrintRune('(')
	for i, p := range m.params {
		if i > 0 {
			f.PrintRune(',')
		}
		p.declareInline(f)
		p.bind(f)
	}
	if v := m.varParam; v != nil {
		if len(m.params) > 0 {
			f.PrintRune(',')
		}
		v.declareInline(f)
		v.mods.Generate(f)
		format.GenerateType(f, v.typ)
		f.Raw("... ")
		f.ID(v.name)
	}
	f.PrintRune(')')
	if len(m.throws) > 0 {
		f.Print("throws")
		format.GenerateTypes(f, m.throws)
	}
	if m.defaultVal != nil {
		f.Print("default ")
		m.defaultVal.Generate(f)
	}
	if m.hasBody() {
		m.Body().Generate(f)
	} else {
		f.PrintRune(';')
	}
	f.Newline()
}

// declareTypeParams prints <T extends Bound, U>.
func declareTypeParams(f format.Formatter, params []types.TypeID) {
	in := f.Types()
	f.PrintRune('<')
	for i, tv := range params {
		if i > 0 {
			f.PrintRune(',')
		}
		f.ID(in.Name(tv))
		if info, ok := in.TypeVarInfo(tv); ok && info.Bound != types.NoTypeID && info.Bound != in.Builtins().Object {
			f.Print("extends")
			format.GenerateType(f, info.Bound)
		}
	}
	f.PrintRune(format.CloseTypeArgs)
}
