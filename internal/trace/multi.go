package trace

import "github.com/cockroachdb/errors"

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer creates a tracer emitting to every one of tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		// every tracer gets its own copy; stream tracers restamp Seq
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	var errs error
	for _, tr := range t.tracers {
		errs = errors.CombineErrors(errs, tr.Flush())
	}
	return errs
}

func (t *MultiTracer) Close() error {
	var errs error
	for _, tr := range t.tracers {
		errs = errors.CombineErrors(errs, tr.Close())
	}
	return errs
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
