package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jcodemodel/internal/diag"
	"jcodemodel/internal/project"
	"jcodemodel/internal/structgen"
	"jcodemodel/internal/writer"
)

const zooTOML = `package = "com.acme.zoo"
options = ["getter"]

[[classes]]
name = "Animal"
fields = [{ name = "id", type = "long" }]

[[classes]]
name = "Dog"
extends = "Animal"

[[classes.fields]]
name = "name"
type = "String"
`

const zooYAML = `package: com.acme.zoo
options: [getter]
classes:
  - name: Animal
    fields:
      - {name: id, type: long}
  - name: Dog
    extends: Animal
    fields:
      - name: name
        type: String
`

const zooJSON = `{
  "package": "com.acme.zoo",
  "options": ["getter"],
  "classes": [
    {"name": "Animal", "fields": [{"name": "id", "type": "long"}]},
    {"name": "Dog", "extends": "Animal", "fields": [{"name": "name", "type": "String"}]}
  ]
}`

var zooUnits = []string{"com/acme/zoo/Animal.java", "com/acme/zoo/Dog.java"}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func sortedLines(s string) string {
	lines := strings.SplitAfter(s, "\n")
	slices.Sort(lines)
	return strings.Join(lines, "")
}

// isolate keeps the output cache of a test away from the user's.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return t.TempDir()
}

func TestDecodeDescriptorFormats(t *testing.T) {
	want := &structgen.Descriptor{
		Package: "com.acme.zoo",
		Options: []string{"getter"},
		Classes: []structgen.ClassDecl{
			{Name: "Animal", Fields: []structgen.FieldDecl{{Name: "id", Type: "long"}}},
			{Name: "Dog", Extends: "Animal", Fields: []structgen.FieldDecl{{Name: "name", Type: "String"}}},
		},
	}
	for ext, text := range map[string]string{".toml": zooTOML, ".yaml": zooYAML, ".yml": zooYAML, ".JSON": zooJSON} {
		got, err := DecodeDescriptor(ext, []byte(text))
		require.NoError(t, err, ext)
		assert.Equal(t, want, got, ext)
	}

	_, err := DecodeDescriptor(".toml", []byte("package = \"a\"\nklasses = []\n"))
	require.ErrorContains(t, err, "unknown keys: klasses")
	_, err = DecodeDescriptor(".yaml", []byte("pakage: a\n"))
	require.Error(t, err)
	_, err = DecodeDescriptor(".json", []byte(`{"classes": [{"nam": "A"}]}`))
	require.Error(t, err)
	_, err = DecodeDescriptor(".csv", nil)
	require.ErrorIs(t, err, ErrUnknownDescriptorFormat)

	empty, err := DecodeDescriptor(".yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Classes)
}

func TestLoadDescriptorsKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, filepath.Join(dir, "b.yaml"), zooYAML),
		writeFile(t, filepath.Join(dir, "a.json"), "{"),
		filepath.Join(dir, "missing.toml"),
	}
	loaded, err := LoadDescriptors(context.Background(), paths, 10, 2)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, paths[0], loaded[0].Path)
	assert.NotNil(t, loaded[0].Descriptor)
	assert.Zero(t, loaded[0].Bag.Len())
	for _, l := range loaded[1:] {
		assert.Nil(t, l.Descriptor)
		require.Equal(t, 1, l.Bag.Len(), l.Path)
		assert.Equal(t, diag.DscDecode, l.Bag.Items()[0].Code)
	}
}

func TestGenerateSkipsUnchangedUnits(t *testing.T) {
	out := isolate(t)
	desc := writeFile(t, filepath.Join(t.TempDir(), "zoo.toml"), zooTOML)
	opts := Options{Descriptors: []string{desc}, OutDir: out}

	res, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, zooUnits, res.Written)
	assert.Empty(t, res.Skipped)
	dog, err := os.ReadFile(filepath.Join(out, "com", "acme", "zoo", "Dog.java"))
	require.NoError(t, err)
	assert.Contains(t, string(dog), "public class Dog extends Animal {\n")
	assert.Contains(t, string(dog), "    public String getName() {\n")

	res, err = Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Equal(t, zooUnits, res.Skipped)

	// a deleted file is written again
	require.NoError(t, os.Remove(filepath.Join(out, "com", "acme", "zoo", "Animal.java")))
	res, err = Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, zooUnits[:1], res.Written)
	assert.Equal(t, zooUnits[1:], res.Skipped)

	// other output settings invalidate every unit
	opts.Prolog = "Generated."
	res, err = Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, zooUnits, res.Written)
	animal, err := os.ReadFile(filepath.Join(out, "com", "acme", "zoo", "Animal.java"))
	require.NoError(t, err)
	assert.Contains(t, string(animal), "//\n// Generated.\n//\n\npackage com.acme.zoo;\n")

	opts.NoCache = true
	res, err = Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, zooUnits, res.Written)
	assert.Nil(t, res.Skipped)
}

func TestGenerateCheckMode(t *testing.T) {
	out := isolate(t)
	desc := writeFile(t, filepath.Join(t.TempDir(), "zoo.json"), zooJSON)

	res, err := Generate(context.Background(), Options{Descriptors: []string{desc}, OutDir: out, Check: true})
	require.NoError(t, err)
	assert.Equal(t, zooUnits, res.Changed)
	assert.NoFileExists(t, filepath.Join(out, "com", "acme", "zoo", "Dog.java"))

	_, err = Generate(context.Background(), Options{Descriptors: []string{desc}, OutDir: out})
	require.NoError(t, err)
	res, err = Generate(context.Background(), Options{Descriptors: []string{desc}, OutDir: out, Check: true})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)

	writeFile(t, filepath.Join(out, "com", "acme", "zoo", "Dog.java"), "edited\n")
	res, err = Generate(context.Background(), Options{Descriptors: []string{desc}, OutDir: out, Check: true})
	require.NoError(t, err)
	assert.Equal(t, zooUnits[1:], res.Changed)
}

func TestGenerateStopsOnDescriptorErrors(t *testing.T) {
	out := filepath.Join(isolate(t), "gen")
	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "zoo.yaml"), zooYAML)
	bad := writeFile(t, filepath.Join(dir, "bad.toml"), "package = \"com.bad\"\n\n[[classes]]\nname = \"1x\"\n")

	res, err := Generate(context.Background(), Options{Descriptors: []string{good, bad}, OutDir: out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSC1005")
	assert.True(t, res.Diagnostics.HasErrors())
	assert.NoDirExists(t, out)
}

func TestGenerateFromManifest(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ManifestName), `[output]
dir = "gen"
charset = "ISO-8859-1"

[generate]
models = ["models/*.toml"]
jobs = 2
`)
	writeFile(t, filepath.Join(root, "models", "zoo.toml"), zooTOML)
	sub := filepath.Join(root, "models")

	m, ok, err := project.LoadManifest(sub)
	require.NoError(t, err)
	require.True(t, ok)

	var phases []string
	res, err := Generate(context.Background(), Options{
		Manifest: m,
		Phases: func(e PhaseEvent) {
			if e.Status == PhaseEnd {
				phases = append(phases, e.Name)
			}
		},
	})
	require.NoError(t, err)
	assert.Equal(t, zooUnits, res.Written)
	assert.FileExists(t, filepath.Join(root, "gen", "com", "acme", "zoo", "Dog.java"))
	assert.Equal(t, []string{"load", "generate", "emit"}, phases)

	report := res.Timer.Report()
	require.Len(t, report.Phases, 5)
	assert.True(t, report.Phases[3].Nested)
}

func TestGenerateStream(t *testing.T) {
	isolate(t)
	desc := writeFile(t, filepath.Join(t.TempDir(), "zoo.toml"), zooTOML)
	var buf, listing bytes.Buffer
	res, err := Generate(context.Background(), Options{Descriptors: []string{desc}, Stream: &buf, Listing: &listing})
	require.NoError(t, err)
	assert.Equal(t, zooUnits, res.Emit.Files())
	assert.Contains(t, buf.String(), writer.Banner("com/acme/zoo/Animal.java"))
	assert.Contains(t, buf.String(), writer.Banner("com/acme/zoo/Dog.java"))
	assert.Equal(t, "com/acme/zoo/Animal.java\ncom/acme/zoo/Dog.java\n", sortedLines(listing.String()))
}

func TestGenerateNeedsDescriptors(t *testing.T) {
	_, err := Generate(context.Background(), Options{OutDir: t.TempDir()})
	require.ErrorIs(t, err, ErrNoDescriptors)
	_, err = Generate(context.Background(), Options{})
	require.Error(t, err)
}
