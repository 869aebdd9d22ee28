package driver

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"jcodemodel/internal/project"
)

// Current schema version; increment when DiskPayload changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores, per output directory, the digest of every unit written
// there, so that unchanged units are not rewritten. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached state of one output directory.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Dir is the absolute output directory.
	Dir string

	// Settings is the digest of the output settings (charset, prolog,
	// indent, newline) the files were written with.
	Settings project.Digest

	// Files maps unit paths to the digest of the rendered unit.
	Files map[string]project.Digest
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "driver: cache location")
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "driver: create cache")
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(outDir string) string {
	return filepath.Join(c.dir, "outputs", project.Sum([]byte(outDir)).String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(payload.Dir)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "driver: cache put")
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "driver: cache put")
	}
	defer func() {
		// the temp file is gone after a successful rename
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.CombineErrors(err, rmErr)
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "driver: cache encode")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "driver: cache put")
	}
	return errors.Wrap(os.Rename(f.Name(), p), "driver: cache put")
}

// Get reads the payload of outDir. A missing entry, an entry from another
// schema version or an unreadable entry is reported as absent.
func (c *DiskCache) Get(outDir string, log *zap.Logger) (*DiskPayload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(outDir)
	f, err := os.Open(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Debug("cache entry unreadable", zap.String("path", p), zap.Error(err))
		}
		return nil, false
	}
	defer func() { _ = f.Close() }()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		log.Debug("cache entry corrupt", zap.String("path", p), zap.Error(err))
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Dir != outDir {
		return nil, false
	}
	return &payload, true
}

// DropAll removes every cache entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Wrap(os.RemoveAll(filepath.Join(c.dir, "outputs")), "driver: drop cache")
}
