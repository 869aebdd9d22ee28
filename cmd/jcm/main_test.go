package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestTypeCommand(t *testing.T) {
	out, _, err := run(t, "type", "int", "Integer")
	require.NoError(t, err)
	assert.Equal(t, `int
  kind:       primitive
  boxed:      java.lang.Integer

java.lang.Integer
  kind:       class
  super:      java.lang.Number
  interfaces: java.lang.Comparable<java.lang.Integer>
`, out)

	out, _, err = run(t, "type", "java.util.List<String>", "--assignable-from", "java.util.ArrayList<String>")
	require.NoError(t, err)
	assert.Contains(t, out, "  erasure:    java.util.List\n")
	assert.Contains(t, out, "  assignable from java.util.ArrayList<java.lang.String>: true\n")

	_, _, err = run(t, "type", "List<")
	require.Error(t, err)
}

func TestInitThenGen(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := filepath.Join(t.TempDir(), "shop")

	out, _, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "created "+filepath.Join(dir, "jcm.toml"))
	_, _, err = run(t, "init", dir)
	require.ErrorContains(t, err, "already initialized")

	t.Chdir(filepath.Join(dir, "model"))
	_, stderr, err := run(t, "gen", "--ui", "off")
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "generated: 2 written, 0 unchanged")

	dog, err := os.ReadFile(filepath.Join(dir, "generated", "com", "example", "model", "Dog.java"))
	require.NoError(t, err)
	assert.Contains(t, string(dog), "// Generated by jcm. Do not edit.\n")
	assert.Contains(t, string(dog), "import java.util.List;\n")
	assert.Contains(t, string(dog), "public class Dog extends Animal implements Serializable {\n")
	assert.Contains(t, string(dog), "    public boolean isGood() {\n")

	_, stderr, err = run(t, "gen", "--ui", "off", "--timings")
	require.NoError(t, err)
	assert.Contains(t, stderr, "generated: 0 written, 2 unchanged")
	assert.Contains(t, stderr, "timings:\n")

	_, stderr, err = run(t, "gen", "--check", "--ui", "off")
	require.NoError(t, err)
	assert.Contains(t, stderr, "ok: 2 units up to date")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "generated", "com", "example", "model", "Dog.java"), []byte("x"), 0o644))
	_, stderr, err = run(t, "gen", "--check", "--ui", "off")
	require.ErrorIs(t, err, errOutOfDate)
	assert.Contains(t, stderr, "would change: com/example/model/Dog.java")
}

func TestGenReportsDescriptorProblems(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("bad.toml", []byte(`package = "com.bad"
options = ["gettr"]

[[classes]]
name = "Thing"
`), 0o644))

	_, stderr, err := run(t, "gen", "--ui", "off", "--out", "gen", "bad.toml")
	require.ErrorContains(t, err, "generation stopped after 1 diagnostics")
	assert.Contains(t, stderr, "error DSC1002 bad.toml:options unknown option \"gettr\"")
	assert.NoDirExists(t, filepath.Join(dir, "gen"))
}

func TestGenDiagnosticFormats(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("bad.yaml", []byte("package: com.bad\nclasses:\n  - name: A\n  - name: A\n"), 0o644))

	out, _, err := run(t, "gen", "--ui", "off", "--out", "gen", "--diag-format", "json", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, out, `"code": "DSC1003"`)
	assert.Contains(t, out, `"message": "first declared here"`)

	out, _, err = run(t, "gen", "--ui", "off", "--out", "gen", "--diag-format", "sarif", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, out, `"version": "2.1.0"`)
	assert.Contains(t, out, `"ruleId": "DSC1003"`)

	_, stderr, err := run(t, "gen", "--ui", "off", "--out", "gen", "--diag-format", "pretty", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, stderr, "bad.yaml:A: error DSC1003: class com.bad.A declared twice\n")

	_, _, err = run(t, "gen", "--diag-format", "xml", "bad.yaml")
	require.ErrorContains(t, err, "invalid --diag-format")
}

func TestProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	_, _, err := run(t, "--cpuprofile", cpu, "type", "int")
	require.NoError(t, err)
	assert.FileExists(t, cpu)
}

func TestGenTraceHeartbeat(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("p.yaml", []byte("package: p\nclasses:\n  - name: P\n"), 0o644))

	_, _, err := run(t, "gen", "--ui", "off", "--out", "gen", "--trace", "trace.log", "--trace-heartbeat", "1ms", "p.yaml")
	require.NoError(t, err)
	assert.FileExists(t, "trace.log")
	assert.FileExists(t, filepath.Join("gen", "p", "P.java"))

	_, _, err = run(t, "gen", "--trace-heartbeat", "often", "p.yaml")
	require.Error(t, err)
}

func TestGenStdout(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("p.yaml", []byte("package: p\nclasses:\n  - name: P\n    fields:\n      - {name: x, type: int}\n"), 0o644))

	out, _, err := run(t, "gen", "--stdout", "p.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "p/P.java")
	assert.Contains(t, out, "public class P {\n    private int x;\n}\n")
}

func TestGenZip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("p.yaml", []byte("package: p\nclasses:\n  - name: P\n  - name: Q\n"), 0o644))

	_, stderr, err := run(t, "gen", "--ui", "off", "--zip", "out.zip", "p.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "archived: 2 units into out.zip")

	zr, err := zip.OpenReader("out.zip")
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"p/P.java", "p/Q.java"}, names)

	_, _, err = run(t, "gen", "--zip", "out.zip", "--stdout", "p.yaml")
	require.ErrorContains(t, err, "--zip cannot be combined")
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := run(t, "gen", "--ui", "sometimes", "x.toml")
	require.Error(t, err)
	_, _, err = run(t, "gen", "--watch", "--check", "x.toml")
	require.ErrorContains(t, err, "--watch cannot be combined")
	root := newRootCmd()
	root.SetArgs([]string{"--color", "rainbow", "version"})
	root.SetOut(&bytes.Buffer{})
	require.Error(t, root.Execute())
}
