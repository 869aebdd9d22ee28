package format

import (
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jcodemodel/internal/trace"
	"jcodemodel/internal/types"
)

// ErrErrorTypeReachable is returned when a unit about to be printed still
// references an unresolved type.
var ErrErrorTypeReachable = errors.New("format: error type reachable from declaration")

// Options controls the printed layout.
type Options struct {
	// Indent is the unit repeated once per nesting level (default four spaces).
	Indent string
	// Newline terminates every line (default "\n").
	Newline string
	// Logger receives import decisions at debug level.
	Logger *zap.Logger
	// Tracer receives collect/decide/print spans.
	Tracer trace.Tracer
	// Parent is the span the pass spans hang under.
	Parent uint64
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = "    "
	}
	if o.Newline == "" {
		o.Newline = "\n"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}

type printer struct {
	in      *types.Interner
	imports *ImportSet
	w       *Writer
}

func (p *printer) Print(s string)         { p.w.WriteString(s) }
func (p *printer) PrintRune(r rune)       { p.w.WriteRune(r) }
func (p *printer) Raw(s string)           { p.w.WriteRaw(s) }
func (p *printer) ID(name string)         { p.w.WriteString(name) }
func (p *printer) Newline()               { p.w.Newline() }
func (p *printer) Indent()                { p.w.IndentPush() }
func (p *printer) Outdent()               { p.w.IndentPop() }
func (p *printer) Printing() bool         { return true }
func (p *printer) Types() *types.Interner { return p.in }

// Type prints a class reference as short, outer-qualified or fully
// qualified according to the import set. Error nodes print as Object.
func (p *printer) Type(id types.TypeID) {
	in := p.in
	switch in.KindOf(id) {
	case types.KindError:
		p.w.WriteString("Object")
	case types.KindClass, types.KindDirect:
		if p.imports.Contains(id) {
			p.w.WriteString(in.Name(id))
			return
		}
		if outer, ok := in.Outer(id); ok {
			p.Type(outer)
			p.w.WriteRune('.')
			p.w.WriteString(in.Name(id))
			return
		}
		p.w.WriteString(in.FullName(id))
	default:
		GenerateType(p, id)
	}
}

// Print writes root's declaration to sink using the decided imports.
func Print(in *types.Interner, root Declaration, imports *ImportSet, sink io.Writer, opt Options) error {
	opt = opt.withDefaults()
	p := &printer{in: in, imports: imports, w: NewWriter(opt)}
	root.Declare(p)
	_, err := sink.Write(p.w.Bytes())
	return errors.Wrap(err, "format: write")
}

// CompilationUnit is one top-level class with everything printed around it.
type CompilationUnit struct {
	Unit
	// Package is the unit's package name; "" is the root package.
	Package string
	// Header is printed before the package statement, usually a comment.
	Header Generable
	// Root is the top-level class declaration.
	Root Declaration
}

// WriteUnit emits one compilation unit: header, package statement, sorted
// imports and the class declaration. Units that still reference error
// nodes are rejected before anything is written.
func WriteUnit(sink io.Writer, in *types.Interner, cu CompilationUnit, opt Options) (err error) {
	opt = opt.withDefaults()
	defer types.RecoverErrorType(&err)

	span := trace.Begin(opt.Tracer, trace.ScopePass, "preflight", opt.Parent)
	bad := ContainsErrorTypes(in, cu.Root)
	span.End("")
	if bad {
		return errors.WithHint(
			errors.Wrapf(ErrErrorTypeReachable, "%s", in.String(cu.Class)),
			"resolve every type referenced by the class before writing it")
	}

	span = trace.Begin(opt.Tracer, trace.ScopePass, "collect", opt.Parent)
	table := Collect(in, cu.Root)
	span.WithExtra("names", strconv.Itoa(table.Len())).End("")

	span = trace.Begin(opt.Tracer, trace.ScopePass, "decide", opt.Parent)
	log := opt.Logger.With(zap.String("unit", in.FullName(cu.Class)))
	imports := Decide(in, table, cu.Unit, log)
	span.WithExtra("imports", strconv.Itoa(imports.Len())).End("")

	span = trace.Begin(opt.Tracer, trace.ScopePass, "print", opt.Parent)
	defer span.End("")
	p := &printer{in: in, imports: imports, w: NewWriter(opt)}
	if cu.Header != nil {
		cu.Header.Generate(p)
	}
	if cu.Package != "" {
		p.Print("package")
		p.Print(cu.Package)
		p.PrintRune(';')
		p.Newline()
		p.Newline()
	}
	lines := imports.Imports(cu.Unit)
	for _, id := range lines {
		p.Print("import")
		p.Print(in.FullName(id))
		p.PrintRune(';')
		p.Newline()
	}
	if len(lines) > 0 {
		p.Newline()
	}
	cu.Root.Declare(p)
	_, err = sink.Write(p.w.Bytes())
	return errors.Wrap(err, "format: write unit")
}
