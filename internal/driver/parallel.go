package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"jcodemodel/internal/diag"
	"jcodemodel/internal/structgen"
)

// ErrUnknownDescriptorFormat is returned for descriptor files whose
// extension names no supported format.
var ErrUnknownDescriptorFormat = errors.New("driver: unknown descriptor format")

// LoadedDescriptor is one decoded descriptor file.
type LoadedDescriptor struct {
	Path       string
	Descriptor *structgen.Descriptor
	Bag        *diag.Bag
}

// LoadDescriptors reads and decodes paths in parallel. Files that cannot be
// read or decoded get a DscDecode error in their bag and a nil Descriptor;
// the returned slice keeps the order of paths.
func LoadDescriptors(ctx context.Context, paths []string, maxDiagnostics, jobs int) ([]LoadedDescriptor, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns its index
	results := make([]LoadedDescriptor, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(maxDiagnostics)
			results[i] = LoadedDescriptor{Path: path, Bag: bag}
			d, err := DecodeDescriptorFile(path)
			if err != nil {
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.DscDecode, diag.Location{File: path}, err.Error()).Emit()
				return nil
			}
			results[i].Descriptor = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DecodeDescriptorFile decodes path by its extension.
func DecodeDescriptorFile(path string) (*structgen.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read descriptor")
	}
	return DecodeDescriptor(filepath.Ext(path), data)
}

// DecodeDescriptor decodes data in the format named by ext (".toml",
// ".yaml", ".yml" or ".json"). Keys the descriptor does not define are
// rejected in every format.
func DecodeDescriptor(ext string, data []byte) (*structgen.Descriptor, error) {
	var d structgen.Descriptor
	switch strings.ToLower(ext) {
	case ".toml":
		meta, err := toml.Decode(string(data), &d)
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.Newf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document decodes to the zero descriptor
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "decode yaml")
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownDescriptorFormat, "%q", ext)
	}
	return &d, nil
}
