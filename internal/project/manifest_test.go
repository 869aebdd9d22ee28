package project

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), Sample)
	writeFile(t, filepath.Join(root, "model", "b.yaml"), "")
	writeFile(t, filepath.Join(root, "model", "a.toml"), "")
	writeFile(t, filepath.Join(root, "model", "notes.txt"), "")
	deep := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(deep)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	if got := m.OutputDir(); got != filepath.Join(root, "generated") {
		t.Fatalf("output dir = %q", got)
	}
	if !m.Config.Generate.CacheEnabled() || m.Config.Output.Charset != "UTF-8" {
		t.Fatalf("unexpected config %+v", m.Config)
	}
	models, err := m.Models()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "model", "a.toml"), filepath.Join(root, "model", "b.yaml")}
	if !reflect.DeepEqual(models, want) {
		t.Fatalf("models = %v, want %v", models, want)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("expected no manifest, got ok=%v err=%v", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"missing [output].dir":        "[generate]\nmodels = [\"m/*.toml\"]\n",
		"missing [generate].models":   "[output]\ndir = \"out\"\n",
		"unknown keys: output.colour": "[output]\ndir = \"out\"\ncolour = \"red\"\n[generate]\nmodels = [\"x\"]\n",
		"must not be negative":        "[output]\ndir = \"out\"\n[generate]\nmodels = [\"x\"]\njobs = -1\n",
		"failed to parse TOML":        "[output\n",
	}
	for want, content := range cases {
		path := filepath.Join(t.TempDir(), ManifestName)
		writeFile(t, path, content)
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%q: got %v", want, err)
		}
	}

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[output]\ndir = \"out\"\n[generate]\nmodels = [\"x\"]\ncache = false\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generate.CacheEnabled() {
		t.Fatalf("cache = false must disable the cache")
	}
}

func TestDigest(t *testing.T) {
	a := Sum([]byte("a"))
	if a.IsZero() || a == Sum([]byte("b")) {
		t.Fatalf("unexpected digest %s", a)
	}
	if Combine(a) == Combine(a, a) {
		t.Fatalf("deps must change the combined digest")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length = %d", len(a.String()))
	}
}
