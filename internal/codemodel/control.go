package codemodel

import (
	"github.com/cockroachdb/errors"

	"jcodemodel/internal/format"
	"jcodemodel/internal/types"
)

// Try appends a try statement.
func (b *Block) Try() *TryBlock {
	t := &TryBlock{body: &Block{}}
	b.Add(t)
	return t
}

// Switch appends a switch statement over test.
func (b *Block) Switch(test Expr) *Switch {
	s := &Switch{test: test}
	b.Add(s)
	return s
}

// DoWhile appends `do { ... } while (test);`.
func (b *Block) DoWhile(test Expr) *DoLoop {
	d := &DoLoop{test: test, body: &Block{}}
	b.Add(d)
	return d
}

// Synchronized appends `synchronized (lock) { ... }`.
func (b *Block) Synchronized(lock Expr) *SyncBlock {
	s := &SyncBlock{lock: lock, body: &Block{}}
	b.Add(s)
	return s
}

// TryBlock is try with optional resources, catch clauses and finally.
type TryBlock struct {
	resources []*Var
	body      *Block
	catches   []*CatchBlock
	finally   *Block
}

// Resource declares a try-with-resources variable. Resources are final
// unless mods says otherwise.
func (t *TryBlock) Resource(mods Mods, typ types.TypeID, name string, init Expr) (*Var, error) {
	if init == nil {
		return nil, errors.Newf("codemodel: resource %s has no initializer", name)
	}
	for _, r := range t.resources {
		if r.name == name {
			return nil, duplicate("resource", name, "try")
		}
	}
	if mods == ModNone {
		mods = ModFinal
	}
	v, err := newVar(mods, typ, name, init, targetLocal)
	if err != nil {
		return nil, err
	}
	t.resources = append(t.resources, v)
	return v, nil
}

func (t *TryBlock) Body() *Block { return t.body }

// Catch adds `catch (E name)`. More exception types turn it into a
// multi-catch `catch (E1 | E2 name)`.
func (t *TryBlock) Catch(name string, exception types.TypeID, more ...types.TypeID) (*CatchBlock, error) {
	param, err := newVar(ModNone, exception, name, nil, targetLocal)
	if err != nil {
		return nil, err
	}
	cb := &CatchBlock{param: param, alts: more, body: &Block{}}
	t.catches = append(t.catches, cb)
	return cb, nil
}

// Catches returns the catch clauses in order.
func (t *TryBlock) Catches() []*CatchBlock { return t.catches }

// Finally returns the finally block, creating it on first use.
func (t *TryBlock) Finally() *Block {
	if t.finally == nil {
		t.finally = &Block{}
	}
	return t.finally
}

func (t *TryBlock) State(f format.Formatter) {
	f.Print("try")
	if len(t.resources) > 0 {
		f.Raw(" (")
		for i, r := range t.resources {
			if i > 0 {
				f.Raw("; ")
			}
			r.bind(f)
		}
		f.PrintRune(')')
	}
	t.body.Generate(f)
	for _, cb := range t.catches {
		cb.generate(f)
	}
	if t.finally != nil {
		f.Print("finally")
		t.finally.Generate(f)
	}
	f.Newline()
}

// CatchBlock is one catch clause of a TryBlock.
type CatchBlock struct {
	param *Var
	alts  []types.TypeID
	body  *Block
}

// Param returns the caught exception variable.
func (cb *CatchBlock) Param() *Var { return cb.param }
func (cb *CatchBlock) Body() *Block { return cb.body }

func (cb *CatchBlock) generate(f format.Formatter) {
	f.Print("catch (")
	format.GenerateType(f, cb.param.typ)
	for _, alt := range cb.alts {
		f.Raw(" | ")
		format.GenerateType(f, alt)
	}
	f.ID(cb.param.name)
	f.PrintRune(')')
	cb.body.Generate(f)
}

// Switch is a classic switch statement. The default case is printed last.
type Switch struct {
	test  Expr
	cases []*Case
	def   *Case
}

// Case adds `case label:`. Enum constants print by their bare name.
func (s *Switch) Case(label Expr) *Case {
	c := &Case{label: label, body: &Block{}}
	s.cases = append(s.cases, c)
	return c
}

// Default returns the default case, creating it on first use.
func (s *Switch) Default() *Case {
	if s.def == nil {
		s.def = &Case{body: &Block{}}
	}
	return s.def
}

func (s *Switch) State(f format.Formatter) {
	printTest(f, "switch", s.test)
	f.PrintRune('{')
	f.Newline()
	f.Indent()
	for _, c := range s.cases {
		c.state(f)
	}
	if s.def != nil {
		s.def.state(f)
	}
	f.Outdent()
	f.PrintRune('}')
	f.Newline()
}

// Case is one label of a Switch. Its body runs on into the next case
// unless it ends in a jump.
type Case struct {
	label Expr
	body  *Block
}

func (c *Case) Body() *Block { return c.body }

func (c *Case) state(f format.Formatter) {
	switch l := c.label.(type) {
	case nil:
		f.Print("default")
	case enumRef:
		f.Print("case ")
		f.ID(l.name)
	case *EnumConstant:
		f.Print("case ")
		f.ID(l.name)
	default:
		// `case 1` must not glue into one token
		f.Print("case ")
		l.Generate(f)
	}
	f.Raw(":")
	f.Newline()
	f.Indent()
	for _, s := range c.body.stmts {
		s.State(f)
	}
	f.Outdent()
}

// DoLoop is a do-while statement.
type DoLoop struct {
	test Expr
	body *Block
}

func (d *DoLoop) Body() *Block { return d.body }

func (d *DoLoop) State(f format.Formatter) {
	f.Print("do")
	d.body.Generate(f)
	printTest(f, "while", d.test)
	f.PrintRune(';')
	f.Newline()
}

// SyncBlock is a synchronized statement.
type SyncBlock struct {
	lock Expr
	body *Block
}

func (s *SyncBlock) Body() *Block { return s.body }

func (s *SyncBlock) State(f format.Formatter) {
	printTest(f, "synchronized", s.lock)
	s.body.State(f)
}
