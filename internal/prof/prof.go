// Package prof writes Go runtime profiles covering one command run.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"

	"github.com/cockroachdb/errors"
)

// Config names the profile files to write. Empty paths are skipped.
type Config struct {
	CPU   string
	Heap  string
	Trace string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPU != "" || c.Heap != "" || c.Trace != ""
}

var (
	mu        sync.Mutex
	heapPath  string
	cpuFile   *os.File
	traceFile *os.File
)

// Start begins CPU profiling and runtime tracing as configured. The heap
// profile is captured by Stop.
func Start(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()
	if cpuFile != nil || traceFile != nil || heapPath != "" {
		return errors.New("prof: already started")
	}

	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return errors.Wrap(err, "prof: cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return errors.Wrap(err, "prof: cpu profile")
		}
		cpuFile = f
	}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err == nil {
			err = trace.Start(f)
			if err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			stopLocked()
			return errors.Wrap(err, "prof: runtime trace")
		}
		traceFile = f
	}
	heapPath = cfg.Heap
	return nil
}

// Stop ends whatever Start began and writes the heap profile. Calling it
// without an active Start does nothing.
func Stop() error {
	mu.Lock()
	defer mu.Unlock()
	return stopLocked()
}

func stopLocked() error {
	var err error
	if cpuFile != nil {
		pprof.StopCPUProfile()
		err = errors.CombineErrors(err, cpuFile.Close())
		cpuFile = nil
	}
	if traceFile != nil {
		trace.Stop()
		err = errors.CombineErrors(err, traceFile.Close())
		traceFile = nil
	}
	if heapPath != "" {
		err = errors.CombineErrors(err, writeHeap(heapPath))
		heapPath = ""
	}
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "prof: heap profile")
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "prof: heap profile")
}
