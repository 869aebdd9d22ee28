package codemodel

import (
	"jcodemodel/internal/format"
	"jcodemodel/internal/types"
)

type annotationMember struct {
	name  string
	value format.Generable
}

// AnnotationUse is one annotation applied to a declaration.
type AnnotationUse struct {
	typ     types.TypeID
	members []annotationMember
}

func newAnnotation(t types.TypeID) *AnnotationUse { return &AnnotationUse{typ: t} }

// Type returns the annotation class.
func (a *AnnotationUse) Type() types.TypeID { return a.typ }

// Param sets member name to an arbitrary expression, replacing any previous value.
func (a *AnnotationUse) Param(name string, value Expr) *AnnotationUse {
	a.set(name, value)
	return a
}

func (a *AnnotationUse) ParamString(name, value string) *AnnotationUse {
	return a.Param(name, Str(value))
}

func (a *AnnotationUse) ParamInt(name string, value int) *AnnotationUse {
	return a.Param(name, Lit(value))
}

func (a *AnnotationUse) ParamLong(name string, value int64) *AnnotationUse {
	return a.Param(name, LitLong(value))
}

func (a *AnnotationUse) ParamBool(name string, value bool) *AnnotationUse {
	return a.Param(name, LitBool(value))
}

// ParamType sets member name to T.class; primitives are boxed first.
func (a *AnnotationUse) ParamType(name string, t types.TypeID) *AnnotationUse {
	return a.Param(name, boxedDotClass(t))
}

// ParamEnum sets member name to Type.CONSTANT.
func (a *AnnotationUse) ParamEnum(name string, t types.TypeID, constant string) *AnnotationUse {
	return a.Param(name, EnumRef(t, constant))
}

// ParamAnnotation sets member name to a nested annotation and returns it.
func (a *AnnotationUse) ParamAnnotation(name string, t types.TypeID) *AnnotationUse {
	nested := newAnnotation(t)
	a.set(name, nested)
	return nested
}

// ParamArray sets member name to an array value and returns it for filling.
func (a *AnnotationUse) ParamArray(name string) *AnnotationArray {
	arr := &AnnotationArray{}
	a.set(name, arr)
	return arr
}

func (a *AnnotationUse) set(name string, v format.Generable) {
	for i := range a.members {
		if a.members[i].name == name {
			a.members[i].value = v
			return
		}
	}
	a.members = append(a.members, annotationMember{name: name, value: v})
}

// Generate prints @Type, @Type(v) when only `value` is set, or
// @Type(a = x, b = y).
func (a *AnnotationUse) Generate(f format.Formatter) {
	f.PrintRune('@')
	format.GenerateType(f, a.typ)
	if len(a.members) == 0 {
		return
	}
	f.PrintRune('(')
	if len(a.members) == 1 && a.members[0].name == "value" {
		a.members[0].value.Generate(f)
	} else {
		for i, m := range a.members {
			if i > 0 {
				f.PrintRune(',')
			}
			f.Print(m.name)
			f.PrintRune('=')
			m.value.Generate(f)
		}
	}
	f.PrintRune(')')
}

// AnnotationArray is an array-valued annotation member.
type AnnotationArray struct {
	items []format.Generable
}

func (arr *AnnotationArray) Add(value Expr) *AnnotationArray {
	arr.items = append(arr.items, value)
	return arr
}

func (arr *AnnotationArray) AddString(value string) *AnnotationArray { return arr.Add(Str(value)) }

func (arr *AnnotationArray) AddType(t types.TypeID) *AnnotationArray {
	return arr.Add(boxedDotClass(t))
}

func (arr *AnnotationArray) AddEnum(t types.TypeID, constant string) *AnnotationArray {
	return arr.Add(EnumRef(t, constant))
}

// AddAnnotation appends a nested annotation and returns it.
func (arr *AnnotationArray) AddAnnotation(t types.TypeID) *AnnotationUse {
	nested := newAnnotation(t)
	arr.items = append(arr.items, nested)
	return nested
}

func (arr *AnnotationArray) Generate(f format.Formatter) {
	f.PrintRune('{')
	format.GenerateList(f, arr.items)
	f.PrintRune('}')
}

func boxedDotClass(t types.TypeID) Expr {
	return format.GenerateFunc(func(f format.Formatter) {
		DotClass(f.Types().Boxify(t)).Generate(f)
	})
}

// annotations is embedded by every annotatable declaration.
type annotations struct {
	list []*AnnotationUse
}

// Annotate applies annotation class t and returns the use for adding members.
// Applying the same class twice returns the existing use.
func (as *annotations) Annotate(t types.TypeID) *AnnotationUse {
	for _, a := range as.list {
		if a.typ == t {
			return a
		}
	}
	a := newAnnotation(t)
	as.list = append(as.list, a)
	return a
}

// Annotations returns the applied annotations in order.
func (as *annotations) Annotations() []*AnnotationUse { return as.list }

// declareOwnLines prints each annotation on its own line.
func (as *annotations) declareOwnLines(f format.Formatter) {
	for _, a := range as.list {
		a.Generate(f)
		f.Newline()
	}
}

// declareInline prints the annotations before a parameter.
func (as *annotations) declareInline(f format.Formatter) {
	for _, a := range as.list {
		a.Generate(f)
	}
}
