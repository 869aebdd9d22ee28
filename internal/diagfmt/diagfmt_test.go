package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"jcodemodel/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.DscUnknownOption, diag.Location{File: "./models/a.toml", Path: "options"}, `unknown option "gettr"`).
		WithHint("known options: getter, setter"))
	bag.Add(diag.New(diag.SevWarning, diag.DscDuplicateClass, diag.Location{File: "models/b.toml", Path: "Person"}, "class declared twice").
		WithNote(diag.Location{File: "models/a.toml", Path: "Person"}, "first declared here"))
	return bag
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowHints: true}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	want := `a.toml:options: error DSC1002: unknown option "gettr"
  = hint: known options: getter, setter
b.toml:Person: warning DSC1003: class declared twice
  = note: a.toml:Person: first declared here
`
	if got := buf.String(); got != want {
		t.Errorf("Pretty() =\n%s\nwant\n%s", got, want)
	}

	buf.Reset()
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape codes, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "= note:") {
		t.Errorf("notes printed without ShowNotes: %q", buf.String())
	}
}

func TestJSONBasic(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{IncludeNotes: true, IncludeHints: true, Max: 1}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", output.Count)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "DSC1002" || d.Title != "Unknown option" {
		t.Errorf("unexpected diagnostic header: %+v", d)
	}
	if d.Location.File != "models/a.toml" || d.Location.Path != "options" {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	if d.Hint != "known options: getter, setter" {
		t.Errorf("unexpected hint: %q", d.Hint)
	}
}

func TestJSONNotes(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{})
	if out.Count != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", out.Count)
	}
	if out.Diagnostics[1].Notes != nil || out.Diagnostics[0].Hint != "" {
		t.Errorf("notes and hints must be opt-in: %+v", out.Diagnostics)
	}

	out = BuildDiagnosticsOutput(sampleBag(), JSONOpts{IncludeNotes: true})
	notes := out.Diagnostics[1].Notes
	if len(notes) != 1 || notes[0].Message != "first declared here" || notes[0].Location.Path != "Person" {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "jcm", ToolVersion: "1.0", InvocationArgs: []string{"gen"}}
	if err := Sarif(&buf, sampleBag(), meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v\nOutput: %s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "jcm" || len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "DSC1002" {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("unexpected invocations: %+v", run.Invocations)
	}
	if len(run.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(run.Results))
	}
	first := run.Results[0]
	if first.Level != "error" || first.Message.Text != `unknown option "gettr" (known options: getter, setter)` {
		t.Errorf("unexpected result: %+v", first)
	}
	if uri := first.Locations[0].PhysicalLocation.ArtifactLocation.URI; uri != "models/a.toml" {
		t.Errorf("unexpected uri %q", uri)
	}
	second := run.Results[1]
	if second.Level != "warning" || len(second.RelatedLocations) != 1 || second.RelatedLocations[0].Message.Text != "first declared here" {
		t.Errorf("unexpected result: %+v", second)
	}
}
