package fuzztests

import (
	"testing"

	"jcodemodel/internal/structgen"
	"jcodemodel/internal/types"
)

func FuzzParseType(f *testing.F) {
	for _, s := range typeSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, text string) {
		if len(text) > maxFuzzInput {
			text = text[:maxFuzzInput]
		}
		in := types.NewInterner()
		id, err := in.ParseType(text)
		if err != nil {
			return
		}
		name := in.FullName(id)
		again, err := in.ParseType(name)
		if err != nil {
			t.Fatalf("ParseType(%q) = %q, which does not parse: %v", text, name, err)
		}
		if got := in.FullName(again); got != name {
			t.Fatalf("ParseType(%q) = %q, reparsed as %q", text, name, got)
		}
		_ = in.Erasure(id)
	})
}

func FuzzSplitType(f *testing.F) {
	for _, s := range []string{"String", "int[] list", "Point set map", "String bag", "  "} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, text string) {
		base, wraps, err := structgen.SplitType(text)
		if err != nil {
			return
		}
		if base == "" {
			t.Fatalf("SplitType(%q) returned an empty base with %d wrappers", text, len(wraps))
		}
	})
}
