package driver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextRun(t *testing.T, runs <-chan *Result) *Result {
	t.Helper()
	select {
	case res := <-runs:
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("no generation run")
		return nil
	}
}

func TestWatchRegeneratesOnChange(t *testing.T) {
	out := isolate(t)
	desc := writeFile(t, filepath.Join(t.TempDir(), "zoo.toml"), zooTOML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan *Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{Descriptors: []string{desc}, OutDir: out}, func(res *Result, err error) {
			if err != nil {
				return
			}
			select {
			case runs <- res:
			default:
			}
		})
	}()

	first := nextRun(t, runs)
	assert.Equal(t, zooUnits, first.Written)

	writeFile(t, desc, strings.Replace(zooTOML, `type = "String"`, `type = "int"`, 1))
	second := nextRun(t, runs)
	assert.Equal(t, zooUnits[1:], second.Written)
	assert.Equal(t, zooUnits[:1], second.Skipped)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Watch did not stop")
	}
}

func TestDescriptorEvents(t *testing.T) {
	assert.True(t, isDescriptorEvent(fsnotify.Event{Name: "a/zoo.YAML", Op: fsnotify.Write}))
	assert.True(t, isDescriptorEvent(fsnotify.Event{Name: "zoo.json", Op: fsnotify.Remove}))
	assert.False(t, isDescriptorEvent(fsnotify.Event{Name: "Zoo.java", Op: fsnotify.Create}))
	assert.False(t, isDescriptorEvent(fsnotify.Event{Name: "zoo.toml", Op: fsnotify.Chmod}))

	assert.Equal(t, []string{"/a", "/b"}, watchDirs([]string{"/b/x.toml", "/a/y.toml", "/a/z.json"}))
}
