package prof

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStartStopWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:  filepath.Join(dir, "cpu.pprof"),
		Heap: filepath.Join(dir, "heap.pprof"),
	}
	if !cfg.Enabled() || (Config{}).Enabled() {
		t.Fatal("Enabled() mismatch")
	}
	if err := Start(cfg); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := Start(cfg); err == nil {
		t.Fatal("second Start() should fail")
	}

	var sb strings.Builder
	for i := range 10000 {
		sb.WriteByte(byte('a' + i%26))
	}
	_ = sb.String()

	if err := Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	for _, path := range []string{cfg.CPU, cfg.Heap} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("missing profile %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("empty profile %s", path)
		}
	}
	if err := Stop(); err != nil {
		t.Fatalf("Stop() without Start error: %v", err)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err := Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
}
