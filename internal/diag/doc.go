// Package diag defines the diagnostics reported while turning struct
// descriptors into a code model.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short human oriented text.
//   - Primary: the Location inside a descriptor the finding is about.
//   - Notes: optional secondary locations with extra context.
//   - Hint: optional advice on how to fix the problem.
//
// Locations name descriptor elements by path ("Person.name") rather than by
// byte offset, since descriptors are decoded from TOML, YAML or JSON and the
// decoders do not keep positions for every element.
//
// # Producers
//
// Producers report through the Reporter interface. BagReporter collects into a
// Bag, which supports sorting, deduplication and folding into an error.
// DedupReporter filters repeats before forwarding.
//
// # Consumers
//
//   - internal/structgen reports descriptor and type problems.
//   - internal/driver collects one Bag per run and fails the run on errors.
//   - cmd/jcm prints FormatShort output.
package diag
