package driver

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 150 * time.Millisecond

var descriptorExts = []string{".toml", ".yaml", ".yml", ".json"}

// Watch runs Generate once and then again after every change to a
// descriptor file, until ctx is done. The directories holding the
// descriptors are watched, so descriptors added there later are picked up
// when the manifest globs match them. Every run is handed to onRun.
func Watch(ctx context.Context, opts Options, onRun func(*Result, error)) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	paths, err := descriptorPaths(&opts)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "driver: create watcher")
	}
	defer func() { _ = w.Close() }()
	for _, dir := range watchDirs(paths) {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "driver: watch %s", dir)
		}
		log.Debug("watching", zap.String("dir", dir))
	}

	run := func() {
		res, err := Generate(ctx, opts)
		onRun(res, err)
	}
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isDescriptorEvent(ev) {
				continue
			}
			log.Debug("descriptor changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			run()
		}
	}
}

func watchDirs(paths []string) []string {
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		dir := filepath.Dir(p)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

func isDescriptorEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(descriptorExts, strings.ToLower(filepath.Ext(ev.Name)))
}
