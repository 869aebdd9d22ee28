package fuzztests

import (
	"context"
	"testing"
	"time"

	"jcodemodel/internal/buildpipeline"
	"jcodemodel/internal/codemodel"
	"jcodemodel/internal/diag"
	"jcodemodel/internal/driver"
	"jcodemodel/internal/structgen"
	"jcodemodel/internal/writer"
)

// emitTimeout bounds rendering one fuzzed model; a slower run points at a
// runaway loop.
const emitTimeout = 5 * time.Second

func fuzzDescriptor(f *testing.F, ext string) {
	f.Add([]byte(descriptorSeeds[ext]))
	addModelSeeds(f, ext)
	f.Fuzz(func(t *testing.T, input []byte) {
		d, err := driver.DecodeDescriptor(ext, clamp(input))
		if err != nil {
			return
		}

		m := codemodel.NewModel()
		bag := diag.NewBag(128)
		g := structgen.New(m, diag.BagReporter{Bag: bag})
		g.Add("fuzz"+ext, d)
		g.Build()
		if bag.HasErrors() {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		_, err = buildpipeline.Emit(ctx, &buildpipeline.EmitRequest{Model: m, Writer: writer.NewMemoryWriter(), Jobs: 1})
		if err != nil && ctx.Err() != nil {
			t.Fatalf("emit did not finish within %s", emitTimeout)
		}
	})
}

func FuzzTOMLDescriptor(f *testing.F) { fuzzDescriptor(f, ".toml") }

func FuzzYAMLDescriptor(f *testing.F) { fuzzDescriptor(f, ".yaml") }

func FuzzJSONDescriptor(f *testing.F) { fuzzDescriptor(f, ".json") }
