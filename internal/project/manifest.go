package project

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Manifest is a loaded jcm.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of jcm.toml.
type Config struct {
	Output   OutputConfig   `toml:"output"`
	Generate GenerateConfig `toml:"generate"`
}

// OutputConfig controls where and how units are written.
type OutputConfig struct {
	Dir      string `toml:"dir"`
	Charset  string `toml:"charset"`
	Indent   string `toml:"indent"`
	Newline  string `toml:"newline"`
	Prolog   string `toml:"prolog"`
	ReadOnly bool   `toml:"read_only"`
}

// GenerateConfig selects the descriptors and the run parameters.
type GenerateConfig struct {
	// Models are glob patterns relative to the project root.
	Models []string `toml:"models"`
	Jobs   int      `toml:"jobs"`
	// Cache is on unless set to false.
	Cache *bool `toml:"cache"`
}

// CacheEnabled reports whether the output digest cache is used.
func (g GenerateConfig) CacheEnabled() bool { return g.Cache == nil || *g.Cache }

// LoadManifest finds and loads the jcm.toml governing startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and checks one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("output", "dir") || strings.TrimSpace(cfg.Output.Dir) == "" {
		return Config{}, errors.Newf("%s: missing [output].dir", path)
	}
	if !meta.IsDefined("generate", "models") || len(cfg.Generate.Models) == 0 {
		return Config{}, errors.Newf("%s: missing [generate].models", path)
	}
	if cfg.Generate.Jobs < 0 {
		return Config{}, errors.Newf("%s: [generate].jobs must not be negative", path)
	}
	return cfg, nil
}

// OutputDir returns the output directory, resolved against the root.
func (m *Manifest) OutputDir() string {
	return m.resolve(m.Config.Output.Dir)
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

// Models expands the model globs into descriptor paths, sorted and without
// duplicates.
func (m *Manifest) Models() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range m.Config.Generate.Models {
		matches, err := filepath.Glob(m.resolve(pattern))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad model pattern %q", m.Path, pattern)
		}
		for _, p := range matches {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// Sample is the manifest written by jcm init.
const Sample = `[output]
dir = "generated"
charset = "UTF-8"
prolog = "Generated by jcm. Do not edit."

[generate]
models = ["model/*.toml", "model/*.yaml", "model/*.json"]
jobs = 0
cache = true
`
