package diag

import (
	"strings"
	"testing"
)

func TestFormatShort(t *testing.T) {
	file := Location{File: "./model/people.toml"}
	diags := []Diagnostic{
		NewError(DscUnknownOption, file.Child("Person").Child("name"), "unknown option \"gettr\"\nsecond").
			WithNote(file.Child("Person"), "declared here"),
		New(SevWarning, GenSkipped, file.Child("Address"), "no setter for final field"),
		NewError(DscDecode, Location{File: "a.yaml"}, "bad yaml"),
	}

	expected := "error DSC1001 a.yaml bad yaml\n" +
		"warning GEN3002 model/people.toml:Address no setter for final field\n" +
		"error DSC1002 model/people.toml:Person.name unknown option \"gettr\" second\n" +
		"note DSC1002 model/people.toml:Person declared here"

	if got := FormatShort(diags, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBag(t *testing.T) {
	bag := NewBag(3)
	r := NewDedupReporter(BagReporter{Bag: bag})
	loc := Location{File: "x.toml", Path: "A"}
	ReportWarning(r, GenSkipped, loc, "skipped").Emit()
	b := ReportError(r, TypUnresolved, loc, "cannot resolve Gizmo").WithHint("declare the class")
	b.Emit()
	b.Emit()
	ReportError(r, TypUnresolved, loc, "cannot resolve Gizmo").Emit()

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
	bag.Sort()
	if bag.Items()[0].Code != TypUnresolved {
		t.Fatalf("errors must sort before warnings at the same location")
	}
	err := bag.Err()
	if err == nil || !strings.Contains(err.Error(), "x.toml:A: TYP2001: cannot resolve Gizmo") {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 3 {
		bag.Add(New(SevInfo, GenInfo, loc, "info"))
	}
	if bag.Len() != 3 {
		t.Fatalf("bag must stop at its limit, got %d", bag.Len())
	}
	if NewBag(1).Err() != nil {
		t.Fatalf("empty bag must not fail")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		DscDecode:        "DSC1001",
		TypCyclicExtends: "TYP2005",
		GenRejected:      "GEN3001",
		UnknownCode:      "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %s, want %s", code, got, want)
		}
	}
	if DscBadName.Title() != "Invalid Java identifier" {
		t.Errorf("unexpected title %q", DscBadName.Title())
	}
}
