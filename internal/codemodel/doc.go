// Package codemodel builds Java source trees on top of the type interner.
//
// A Model owns packages; packages own top-level classes; classes own their
// fields, methods, nested classes and enum constants. Every node knows how to
// print itself through a format.Formatter, so the same tree feeds the usage
// collector, the import resolver and the printer.
//
//	m := codemodel.NewModel()
//	cls, _ := m.Class("com.acme.Foo", types.ClassKindClass)
//	f, _ := cls.Field(codemodel.ModPrivate, m.MustRef("java.util.List"), "items", nil)
//	get, _ := cls.Method(codemodel.ModPublic, f.Type(), "getItems")
//	get.Body().Return(f)
package codemodel
