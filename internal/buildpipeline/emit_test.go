package buildpipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jcodemodel/internal/codemodel"
	"jcodemodel/internal/format"
	"jcodemodel/internal/trace"
	"jcodemodel/internal/types"
	"jcodemodel/internal/writer"
)

func sampleModel(t *testing.T) *codemodel.Model {
	t.Helper()
	m := codemodel.NewModel()
	str := m.Types().Builtins().String
	for _, fqn := range []string{"com.acme.Order", "com.acme.Customer", "com.acme.util.Ids", "Main"} {
		cls, err := m.Class(fqn, types.ClassKindClass)
		require.NoError(t, err)
		_, err = cls.Field(codemodel.ModPrivate, str, "id", nil)
		require.NoError(t, err)
	}
	hidden, err := m.Class("com.acme.Hidden", types.ClassKindClass)
	require.NoError(t, err)
	hidden.Hide()
	return m
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(evt Event) {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
}

func (r *recorder) done() []string {
	var out []string
	for _, e := range r.events {
		if e.Stage == StageWrite && e.Status == StatusDone {
			out = append(out, e.File)
		}
	}
	return out
}

func TestEmitWritesEveryVisibleClass(t *testing.T) {
	m := sampleModel(t)
	mem := writer.NewMemoryWriter()
	rec := &recorder{}
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	res, err := Emit(ctx, &EmitRequest{Model: m, Writer: mem, Jobs: 2, Progress: rec})
	require.NoError(t, err)

	want := []string{"Main.java", "com/acme/Customer.java", "com/acme/Order.java", "com/acme/util/Ids.java"}
	assert.Equal(t, want, res.Files())
	assert.Equal(t, want, mem.Files())
	assert.Equal(t, want, Units(m))
	assert.ElementsMatch(t, want, rec.done())
	assert.True(t, res.Timings.Has(StageValidate))

	order, ok := mem.File("com/acme/Order.java")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(order), "package com.acme;\n\npublic class Order {\n"))
	main, _ := mem.File("Main.java")
	assert.True(t, strings.HasPrefix(string(main), "public class Main {\n"))

	var units int
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeUnit && ev.Kind == trace.KindSpanEnd {
			units++
		}
	}
	assert.Equal(t, len(want), units)
}

func TestEmitStopsOnUnresolvedType(t *testing.T) {
	m := sampleModel(t)
	broken, err := m.Class("com.acme.Broken", types.ClassKindClass)
	require.NoError(t, err)
	_, err = broken.Field(codemodel.ModPrivate, m.Types().ErrorClass("no such class", "Gizmo"), "g", nil)
	require.NoError(t, err)

	mem := writer.NewMemoryWriter()
	rec := &recorder{}
	_, err = Emit(context.Background(), &EmitRequest{Model: m, Writer: mem, Progress: rec})
	require.ErrorIs(t, err, format.ErrErrorTypeReachable)
	assert.Contains(t, err.Error(), "com.acme.Broken")
	assert.Empty(t, mem.Files())
	assert.Empty(t, rec.done())
}

func TestEmitReportsDuplicateSignatures(t *testing.T) {
	m := codemodel.NewModel()
	cls, err := m.Class("com.acme.Twice", types.ClassKindClass)
	require.NoError(t, err)
	for range 2 {
		_, err := cls.Method(codemodel.ModPublic, m.Types().Builtins().Void, "run")
		require.NoError(t, err)
	}
	_, err = Emit(context.Background(), &EmitRequest{Model: m, Writer: writer.NewMemoryWriter()})
	require.ErrorIs(t, err, codemodel.ErrDuplicate)
}

func TestEmitHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mem := writer.NewMemoryWriter()
	_, err := Emit(ctx, &EmitRequest{Model: sampleModel(t), Writer: mem, Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mem.Files())
}

func TestEmitRejectsMissingWriter(t *testing.T) {
	_, err := Emit(context.Background(), &EmitRequest{Model: codemodel.NewModel()})
	require.Error(t, err)
}

func TestEmitWritesPackageResources(t *testing.T) {
	m := sampleModel(t)
	props := codemodel.NewPropertyFile("app.properties").Set("name", "acme")
	require.NoError(t, m.MustPackage("com.acme").AddResource(props))
	require.NoError(t, m.MustPackage("").AddResource(codemodel.NewTextFile("README.txt", "hello\n")))
	mem := writer.NewMemoryWriter()

	res, err := Emit(context.Background(), &EmitRequest{Model: m, Writer: mem, Jobs: 2})
	require.NoError(t, err)

	want := []string{
		"Main.java", "README.txt", "com/acme/Customer.java", "com/acme/Order.java",
		"com/acme/app.properties", "com/acme/util/Ids.java",
	}
	assert.Equal(t, want, res.Files())
	assert.Equal(t, want, Units(m))

	got, ok := mem.File("com/acme/app.properties")
	require.True(t, ok)
	assert.Equal(t, "name=acme\n", string(got))
	got, _ = mem.File("README.txt")
	assert.Equal(t, "hello\n", string(got))
	for _, u := range res.Units {
		if strings.HasSuffix(u.Path, ".java") {
			assert.NotEmpty(t, u.Class, u.Path)
		} else {
			assert.Empty(t, u.Class, u.Path)
		}
	}
}
