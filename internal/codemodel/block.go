package codemodel

import (
	"strings"

	"jcodemodel/internal/format"
	"jcodemodel/internal/types"
)

// Block is a brace-delimited statement list.
type Block struct {
	stmts []format.Statement
}

// Empty reports whether nothing was added to the block.
func (b *Block) Empty() bool { return len(b.stmts) == 0 }

// Add appends any statement, e.g. an *Invocation.
func (b *Block) Add(s format.Statement) *Block {
	b.stmts = append(b.stmts, s)
	return b
}

// Decl declares a local variable and returns it for use in expressions.
func (b *Block) Decl(mods Mods, t types.TypeID, name string, init Expr) (*Var, error) {
	v, err := newVar(mods, t, name, init, targetLocal)
	if err != nil {
		return nil, err
	}
	b.stmts = append(b.stmts, v)
	return v, nil
}

// Assign appends `lhs = rhs;`.
func (b *Block) Assign(lhs, rhs Expr) *Block {
	return b.Add(assignment{lhs: lhs, op: "=", rhs: rhs})
}

// AssignPlus appends `lhs += rhs;`.
func (b *Block) AssignPlus(lhs, rhs Expr) *Block {
	return b.Add(assignment{lhs: lhs, op: "+=", rhs: rhs})
}

// Invoke appends obj.method(...) and returns the invocation for its arguments.
func (b *Block) Invoke(obj Expr, method string) *Invocation {
	inv := Invoke(obj, method)
	b.Add(inv)
	return inv
}

// Eval appends e as an expression statement, e.g. Incr(i).
func (b *Block) Eval(e Expr) *Block { return b.Add(exprStmt{e}) }

// Return appends `return e;`; a nil e returns nothing.
func (b *Block) Return(e Expr) *Block { return b.Add(keywordStmt{word: "return", e: e}) }

// Throw appends `throw e;`.
func (b *Block) Throw(e Expr) *Block { return b.Add(keywordStmt{word: "throw", e: e}) }

// Break appends `break;` or `break label;`.
func (b *Block) Break(label string) *Block { return b.Add(jump{word: "break", label: label}) }

// Continue appends `continue;` or `continue label;`.
func (b *Block) Continue(label string) *Block { return b.Add(jump{word: "continue", label: label}) }

// If appends an if statement.
func (b *Block) If(test Expr) *Conditional {
	c := &Conditional{test: test, then: &Block{}}
	b.Add(c)
	return c
}

// While appends a while loop.
func (b *Block) While(test Expr) *WhileLoop {
	w := &WhileLoop{test: test, body: &Block{}}
	b.Add(w)
	return w
}

// ForEach appends `for (T name : collection)` and returns the loop.
func (b *Block) ForEach(t types.TypeID, name string, collection Expr) (*ForEach, error) {
	v, err := newVar(ModNone, t, name, nil, targetLocal)
	if err != nil {
		return nil, err
	}
	fe := &ForEach{v: v, collection: collection, body: &Block{}}
	b.Add(fe)
	return fe, nil
}

// For appends a classic for loop.
func (b *Block) For() *ForLoop {
	fl := &ForLoop{body: &Block{}}
	b.Add(fl)
	return fl
}

// Block appends a nested block.
func (b *Block) Block() *Block {
	nested := &Block{}
	b.Add(nested)
	return nested
}

// Comment appends a // comment; multi-line text yields one line each.
func (b *Block) Comment(text string) *Block { return b.Add(lineComment(text)) }

// Direct appends verbatim source text as its own line.
func (b *Block) Direct(text string) *Block { return b.Add(direct(text)) }

// Generate prints `{ ... }` without the trailing newline.
func (b *Block) Generate(f format.Formatter) {
	f.PrintRune('{')
	f.Newline()
	f.Indent()
	for _, s := range b.stmts {
		s.State(f)
	}
	f.Outdent()
	f.PrintRune('}')
}

func (b *Block) State(f format.Formatter) {
	b.Generate(f)
	f.Newline()
}

type assignment struct {
	lhs Expr
	op  string
	rhs Expr
}

func (a assignment) State(f format.Formatter) {
	a.lhs.Generate(f)
	f.Print(a.op)
	a.rhs.Generate(f)
	f.PrintRune(';')
	f.Newline()
}

type exprStmt struct{ e Expr }

func (s exprStmt) State(f format.Formatter) {
	s.e.Generate(f)
	f.PrintRune(';')
	f.Newline()
}

type keywordStmt struct {
	word string
	e    Expr
}

func (s keywordStmt) State(f format.Formatter) {
	if s.e == nil {
		f.Print(s.word)
	} else {
		// `return (a + b)` must not print as a call
		f.Print(s.word + " ")
		s.e.Generate(f)
	}
	f.PrintRune(';')
	f.Newline()
}

type jump struct{ word, label string }

func (j jump) State(f format.Formatter) {
	f.Print(j.word)
	if j.label != "" {
		f.ID(j.label)
	}
	f.PrintRune(';')
	f.Newline()
}

type lineComment string

func (c lineComment) State(f format.Formatter) {
	for line := range strings.SplitSeq(string(c), "\n") {
		f.Raw("// " + line)
		f.Newline()
	}
}

type direct string

func (d direct) State(f format.Formatter) {
	f.Raw(string(d))
	f.Newline()
}

// Conditional is an if statement with optional else branch.
type Conditional struct {
	test      Expr
	then      *Block
	otherwise format.Statement // *Block or *Conditional
}

// Then returns the block run when the test holds.
func (c *Conditional) Then() *Block { return c.then }

// Else returns the else block, creating it on first use.
func (c *Conditional) Else() *Block {
	if b, ok := c.otherwise.(*Block); ok {
		return b
	}
	b := &Block{}
	c.otherwise = b
	return b
}

// ElseIf chains `else if (test)` and returns the new conditional.
func (c *Conditional) ElseIf(test Expr) *Conditional {
	next := &Conditional{test: test, then: &Block{}}
	c.otherwise = next
	return next
}

func (c *Conditional) State(f format.Formatter) {
	c.head(f)
	f.Newline()
}

func (c *Conditional) head(f format.Formatter) {
	printTest(f, "if", c.test)
	c.then.Generate(f)
	switch other := c.otherwise.(type) {
	case *Block:
		f.Print("else")
		other.Generate(f)
	case *Conditional:
		f.Print("else")
		other.head(f)
	}
}

// printTest prints `word (test)`, reusing the parentheses a binary
// expression prints for itself.
func printTest(f format.Formatter, word string, test Expr) {
	if isBinary(test) {
		f.Print(word + " ")
		test.Generate(f)
		return
	}
	f.Print(word + " (")
	test.Generate(f)
	f.PrintRune(')')
}

// WhileLoop is a while statement.
type WhileLoop struct {
	test Expr
	body *Block
}

func (w *WhileLoop) Body() *Block { return w.body }

func (w *WhileLoop) State(f format.Formatter) {
	printTest(f, "while", w.test)
	w.body.State(f)
}

// ForEach is an enhanced for statement.
type ForEach struct {
	v          *Var
	collection Expr
	body       *Block
}

// Var returns the loop variable.
func (fe *ForEach) Var() *Var    { return fe.v }
func (fe *ForEach) Body() *Block { return fe.body }

func (fe *ForEach) State(f format.Formatter) {
	f.Print("for (")
	fe.v.bind(f)
	f.Raw(" : ")
	fe.collection.Generate(f)
	f.PrintRune(')')
	fe.body.State(f)
}

// ForLoop is a classic three-clause for statement.
type ForLoop struct {
	inits   []format.Generable
	test    Expr
	updates []Expr
	body    *Block
}

// Init declares a loop variable.
func (fl *ForLoop) Init(t types.TypeID, name string, e Expr) (*Var, error) {
	v, err := newVar(ModNone, t, name, e, targetLocal)
	if err != nil {
		return nil, err
	}
	fl.inits = append(fl.inits, format.GenerateFunc(v.bind))
	return v, nil
}

// Test sets the loop condition.
func (fl *ForLoop) Test(e Expr) *ForLoop {
	fl.test = e
	return fl
}

// Update appends an update expression, e.g. Incr(i).
func (fl *ForLoop) Update(e Expr) *ForLoop {
	fl.updates = append(fl.updates, e)
	return fl
}

func (fl *ForLoop) Body() *Block { return fl.body }

func (fl *ForLoop) State(f format.Formatter) {
	f.Print("for (")
	format.GenerateList(f, fl.inits)
	f.PrintRune(';')
	if fl.test != nil {
		fl.test.Generate(f)
	}
	f.PrintRune(';')
	format.GenerateList(f, fl.updates)
	f.PrintRune(')')
	fl.body.State(f)
}
