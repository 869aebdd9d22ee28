// Package driver runs the generator end to end: it loads descriptor files,
// builds the code model and writes the compilation units.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jcodemodel/internal/buildpipeline"
	"jcodemodel/internal/codemodel"
	"jcodemodel/internal/diag"
	"jcodemodel/internal/format"
	"jcodemodel/internal/observ"
	"jcodemodel/internal/project"
	"jcodemodel/internal/structgen"
	"jcodemodel/internal/trace"
	"jcodemodel/internal/writer"
)

const cacheApp = "jcm"

// ErrNoDescriptors is returned when a run has nothing to generate from.
var ErrNoDescriptors = errors.New("driver: no descriptor files")

// Options configures one Generate run. Zero fields fall back to the
// manifest, when one is given, and then to the defaults.
type Options struct {
	// Descriptors overrides the manifest's model globs.
	Descriptors []string
	Manifest    *project.Manifest

	OutDir   string
	Charset  string
	Indent   string
	Newline  string
	Prolog   string
	ReadOnly bool
	Jobs     int

	// Check renders without writing and reports the units that differ
	// from the files under OutDir.
	Check bool
	// NoCache rewrites every unit.
	NoCache bool
	// Stream receives every unit behind a banner instead of OutDir.
	Stream io.Writer
	// Archive receives a zip of every unit instead of OutDir.
	Archive io.Writer
	// Listing receives the path of every unit as it is written.
	Listing io.Writer

	Progress       buildpipeline.ProgressSink
	Phases         PhaseObserver
	Logger         *zap.Logger
	MaxDiagnostics int
}

// Result is the outcome of a Generate run.
type Result struct {
	Diagnostics *diag.Bag
	Model       *codemodel.Model
	Emit        buildpipeline.EmitResult
	// Written lists the units written to disk.
	Written []string
	// Skipped lists the units left untouched because they did not change.
	Skipped []string
	// Changed lists, in check mode, the units that would be rewritten.
	Changed []string
	Timer   *observ.Timer
}

type settings struct {
	outDir   string
	charset  string
	indent   string
	newline  string
	prolog   string
	readOnly bool
	jobs     int
	cache    bool
}

func resolveSettings(opts *Options) settings {
	s := settings{cache: true}
	if m := opts.Manifest; m != nil {
		out := m.Config.Output
		s = settings{
			outDir:   m.OutputDir(),
			charset:  out.Charset,
			indent:   out.Indent,
			newline:  out.Newline,
			prolog:   out.Prolog,
			readOnly: out.ReadOnly,
			jobs:     m.Config.Generate.Jobs,
			cache:    m.Config.Generate.CacheEnabled(),
		}
	}
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&s.outDir, opts.OutDir)
	pick(&s.charset, opts.Charset)
	pick(&s.indent, opts.Indent)
	pick(&s.newline, opts.Newline)
	pick(&s.prolog, opts.Prolog)
	if s.charset == "" {
		s.charset = "UTF-8"
	}
	if opts.ReadOnly {
		s.readOnly = true
	}
	if opts.Jobs > 0 {
		s.jobs = opts.Jobs
	}
	if opts.NoCache {
		s.cache = false
	}
	return s
}

// salt identifies the output settings that change file content without
// changing the rendered unit.
func (s settings) salt() project.Digest {
	return project.Combine(project.Sum([]byte(s.charset)),
		project.Sum([]byte(s.prolog)),
		project.Sum([]byte(s.indent)),
		project.Sum([]byte(s.newline)))
}

func descriptorPaths(opts *Options) ([]string, error) {
	if len(opts.Descriptors) > 0 {
		return opts.Descriptors, nil
	}
	if opts.Manifest == nil {
		return nil, ErrNoDescriptors
	}
	paths, err := opts.Manifest.Models()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.WithHint(errors.Wrapf(ErrNoDescriptors, "%s", opts.Manifest.Path),
			"check the [generate].models patterns")
	}
	return paths, nil
}

// Generate loads the descriptors, builds one code model from all of them and
// writes its units. Descriptor problems are returned in Result.Diagnostics;
// when any of them is an error, nothing is written and the error is
// returned as well.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	res := &Result{
		Diagnostics: diag.NewBag(opts.MaxDiagnostics),
		Timer:       observ.NewTimer(),
	}
	s := resolveSettings(&opts)
	if s.outDir == "" && opts.Stream == nil && opts.Archive == nil {
		return res, errors.WithHint(errors.New("driver: no output directory"),
			"pass --out or set [output].dir in jcm.toml")
	}

	paths, err := descriptorPaths(&opts)
	if err != nil {
		return res, err
	}

	tracer := trace.FromContext(ctx)
	phase := func(name string) func(note string) {
		opts.Phases.start(name)
		start := time.Now()
		done := res.Timer.Track(name)
		span := trace.Begin(tracer, trace.ScopeDriver, name, trace.ParentFromContext(ctx))
		return func(note string) {
			span.End(note)
			done(note)
			opts.Phases.end(name, time.Since(start))
		}
	}

	done := phase("load")
	loaded, err := LoadDescriptors(ctx, paths, opts.MaxDiagnostics, s.jobs)
	if err != nil {
		done("failed")
		return res, err
	}
	for _, l := range loaded {
		res.Diagnostics.Merge(l.Bag)
	}
	done(fmt.Sprintf("%d descriptors", len(paths)))

	done = phase("generate")
	res.Model = codemodel.NewModel()
	gen := structgen.New(res.Model, diag.BagReporter{Bag: res.Diagnostics}, structgen.WithLogger(log))
	for _, l := range loaded {
		if l.Descriptor != nil {
			gen.Add(l.Path, l.Descriptor)
		}
	}
	classes := gen.Build()
	res.Diagnostics.Dedup()
	res.Diagnostics.Sort()
	done(fmt.Sprintf("%d classes", len(classes)))
	if res.Diagnostics.HasErrors() {
		return res, res.Diagnostics.Err()
	}

	done = phase("emit")
	err = emit(ctx, &opts, s, res, log)
	done(fmt.Sprintf("%d units", len(res.Emit.Units)))
	for _, stage := range []buildpipeline.Stage{buildpipeline.StageValidate, buildpipeline.StagePrint} {
		if res.Emit.Timings.Has(stage) {
			res.Timer.AddNested(string(stage), res.Emit.Timings.Duration(stage), "")
		}
	}
	return res, err
}

func emit(ctx context.Context, opts *Options, s settings, res *Result, log *zap.Logger) error {
	req := &buildpipeline.EmitRequest{
		Model:    res.Model,
		Jobs:     s.jobs,
		Progress: opts.Progress,
		Format: format.Options{
			Indent:  s.indent,
			Newline: s.newline,
			Logger:  log,
		},
	}
	decorate := func(w writer.CodeWriter) (writer.CodeWriter, error) {
		enc, err := writer.NewEncodingWriter(w, s.charset)
		if err != nil {
			return nil, err
		}
		var out writer.CodeWriter = enc
		if s.prolog != "" {
			out = writer.NewPrologWriter(out, s.prolog)
		}
		if opts.Listing != nil {
			out = writer.NewProgressWriter(out, opts.Listing)
		}
		return out, nil
	}

	switch {
	case opts.Stream != nil:
		w, err := decorate(writer.NewStreamWriter(opts.Stream))
		if err != nil {
			return err
		}
		req.Writer = w
		res.Emit, err = buildpipeline.Emit(ctx, req)
		return err

	case opts.Archive != nil:
		w, err := decorate(writer.NewZipWriter(opts.Archive))
		if err != nil {
			return err
		}
		req.Writer = w
		res.Emit, err = buildpipeline.Emit(ctx, req)
		return err

	case opts.Check:
		mem := writer.NewMemoryWriter()
		w, err := decorate(mem)
		if err != nil {
			return err
		}
		req.Writer = w
		if res.Emit, err = buildpipeline.Emit(ctx, req); err != nil {
			return err
		}
		res.Changed, err = changedFiles(mem, s.outDir)
		return err
	}

	outDir, err := filepath.Abs(s.outDir)
	if err != nil {
		return errors.Wrap(err, "driver: output directory")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "driver: create output directory")
	}
	var dirOpts []writer.DirOption
	if s.readOnly {
		dirOpts = append(dirOpts, writer.ReadOnly())
	}
	dir, err := writer.NewDirWriter(outDir, dirOpts...)
	if err != nil {
		return err
	}
	w, err := decorate(dir)
	if err != nil {
		return err
	}

	var (
		cache  *DiskCache
		cached *cachingWriter
	)
	if s.cache {
		cache, err = OpenDiskCache(cacheApp)
		if err != nil {
			log.Warn("output cache unavailable", zap.Error(err))
		}
	}
	if cache != nil {
		prev, ok := cache.Get(outDir, log)
		if ok && prev.Settings != s.salt() {
			prev = nil
		}
		cached = newCachingWriter(w, outDir, prev)
		w = cached
	}

	req.Writer = w
	if res.Emit, err = buildpipeline.Emit(ctx, req); err != nil {
		return err
	}
	res.Written = res.Emit.Files()
	if cached == nil {
		return nil
	}
	res.Skipped = cached.Skipped()
	res.Written = slices.DeleteFunc(res.Written, func(p string) bool {
		_, found := slices.BinarySearch(res.Skipped, p)
		return found
	})
	log.Debug("units unchanged", zap.Int("skipped", len(res.Skipped)))
	if err := cache.Put(&DiskPayload{Dir: outDir, Settings: s.salt(), Files: cached.Files()}); err != nil {
		log.Warn("output cache not saved", zap.Error(err))
	}
	return nil
}
