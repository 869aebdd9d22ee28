// Package buildpipeline writes every top-level class of a code model as its
// own compilation unit, rendering units in parallel.
package buildpipeline

import (
	"bytes"
	"context"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jcodemodel/internal/codemodel"
	"jcodemodel/internal/format"
	"jcodemodel/internal/trace"
	"jcodemodel/internal/writer"
)

// EmitRequest configures one emission run.
type EmitRequest struct {
	Model  *codemodel.Model
	Writer writer.CodeWriter
	// Jobs bounds the units rendered at once; <= 0 means GOMAXPROCS.
	Jobs int
	// Format carries indent, newline and the import-decision logger.
	Format   format.Options
	Progress ProgressSink
}

// UnitResult describes one written file. Class is empty for package
// resources.
type UnitResult struct {
	Path    string
	Class   string
	Bytes   int
	Elapsed time.Duration
}

// EmitResult lists the written units in path order.
type EmitResult struct {
	Units   []UnitResult
	Timings Timings
}

// Files returns the written paths.
func (r EmitResult) Files() []string {
	out := make([]string, len(r.Units))
	for i, u := range r.Units {
		out[i] = u.Path
	}
	return out
}

// Units returns the paths of the files a model would be written as: one
// unit per visible top-level class plus the package resources.
func Units(m *codemodel.Model) []string {
	outs := outputs(m)
	paths := make([]string, len(outs))
	for i, o := range outs {
		paths[i] = o.path
	}
	return paths
}

// Emit validates the model, then renders and writes each non-hidden
// top-level class and every package resource. Nothing is written when
// validation fails. The writer is closed before Emit returns.
func Emit(ctx context.Context, req *EmitRequest) (EmitResult, error) {
	var result EmitResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil || req.Model == nil || req.Writer == nil {
		return result, errors.New("buildpipeline: missing model or writer")
	}
	log := req.Format.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "emit", trace.ParentFromContext(ctx))

	outs := outputs(req.Model)
	files := make([]string, len(outs))
	for i, o := range outs {
		files[i] = o.path
	}
	emitQueued(req.Progress, files)

	start := time.Now()
	if err := validate(req.Model, emittable(req.Model)); err != nil {
		emitStage(req.Progress, files, StageValidate, StatusError, err, 0)
		span.End("invalid")
		return result, errors.CombineErrors(err, req.Writer.Close())
	}
	result.Timings.Set(StageValidate, time.Since(start))
	emitStage(req.Progress, nil, StageValidate, StatusDone, nil, result.Timings.Duration(StageValidate))

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// one slot per file, each goroutine owns its index
	units := make([]UnitResult, len(outs))
	start = time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(outs))))
	for i, o := range outs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := emitUnit(req, o, tracer, span.ID())
			if err != nil {
				return err
			}
			units[i] = u
			log.Debug("unit written", zap.String("path", u.Path), zap.Int("bytes", u.Bytes))
			return nil
		})
	}
	err := g.Wait()
	result.Timings.Set(StagePrint, time.Since(start))
	err = errors.CombineErrors(err, req.Writer.Close())
	if err != nil {
		span.End("failed")
		return result, err
	}
	result.Units = units
	span.WithExtra("units", strconv.Itoa(len(units))).End("")
	return result, nil
}

func emittable(m *codemodel.Model) []*codemodel.DefinedClass {
	var out []*codemodel.DefinedClass
	for _, cls := range m.TopLevelClasses() {
		if !cls.IsHidden() {
			out = append(out, cls)
		}
	}
	return out
}

// output is one file of a run: the unit of a class or a package resource.
type output struct {
	pkg  string
	name string
	path string
	cls  *codemodel.DefinedClass
	res  codemodel.ResourceFile
}

func outputs(m *codemodel.Model) []output {
	var out []output
	for _, cls := range emittable(m) {
		pkg, name := cls.Package().Name(), cls.Name()+".java"
		out = append(out, output{pkg: pkg, name: name, path: writer.Path(pkg, name), cls: cls})
	}
	for _, p := range m.Packages() {
		for _, rf := range p.Resources() {
			out = append(out, output{pkg: p.Name(), name: rf.Name(), path: writer.Path(p.Name(), rf.Name()), res: rf})
		}
	}
	slices.SortFunc(out, func(a, b output) int { return strings.Compare(a.path, b.path) })
	return out
}

// validate runs the model-wide checks and the error-type preflight of every
// unit, so that a failing unit keeps the others from being written.
func validate(m *codemodel.Model, classes []*codemodel.DefinedClass) error {
	errs := m.Validate()
	in := m.Types()
	for _, cls := range classes {
		if format.ContainsErrorTypes(in, cls) {
			errs = errors.CombineErrors(errs, errors.WithHint(
				errors.Wrapf(format.ErrErrorTypeReachable, "%s", cls.FullName()),
				"every type a class references must resolve before it is written"))
		}
	}
	return errs
}

func emitUnit(req *EmitRequest, o output, tracer trace.Tracer, parent uint64) (UnitResult, error) {
	start := time.Now()
	span := trace.Begin(tracer, trace.ScopeUnit, o.path, parent)
	files := []string{o.path}
	fail := func(stage Stage, err error) (UnitResult, error) {
		err = errors.Wrapf(err, "emit %s", o.path)
		emitStage(req.Progress, files, stage, StatusError, err, time.Since(start))
		span.End("error")
		return UnitResult{}, err
	}

	emitStage(req.Progress, files, StagePrint, StatusWorking, nil, 0)
	var content []byte
	if o.cls != nil {
		opt := req.Format
		opt.Tracer = tracer
		opt.Parent = span.ID()
		var buf bytes.Buffer
		if err := req.Model.WriteClass(&buf, o.cls, opt); err != nil {
			return fail(StagePrint, err)
		}
		content = buf.Bytes()
	} else {
		var err error
		if content, err = o.res.Content(); err != nil {
			return fail(StagePrint, err)
		}
	}

	emitStage(req.Progress, files, StageWrite, StatusWorking, nil, 0)
	out, err := req.Writer.Open(o.pkg, o.name)
	if err != nil {
		return fail(StageWrite, err)
	}
	_, err = out.Write(content)
	if err = errors.CombineErrors(err, out.Close()); err != nil {
		return fail(StageWrite, err)
	}

	elapsed := time.Since(start)
	emitStage(req.Progress, files, StageWrite, StatusDone, nil, elapsed)
	span.WithExtra("bytes", strconv.Itoa(len(content))).End("")
	u := UnitResult{Path: o.path, Bytes: len(content), Elapsed: elapsed}
	if o.cls != nil {
		u.Class = o.cls.FullName()
	}
	return u, nil
}
