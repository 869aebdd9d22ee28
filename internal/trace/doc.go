// Package trace records the span structure of a generation run.
//
// A run is traced at three scopes: the driver (one `jcm gen`), the emission
// passes of each compilation unit (preflight, collect, decide, print) and the
// units themselves. The level picks how deep the recording goes:
//
//	LevelPhase   driver and pass spans
//	LevelDetail  adds one span per compilation unit
//	LevelDebug   everything
//
// Tracers either stream events as they happen or keep the most recent ones
// in a ring that can be dumped after a failure.
//
//	span := trace.Begin(t, trace.ScopeUnit, "unit:com.acme.Foo", parent)
//	defer span.End("")
package trace
