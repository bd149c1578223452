package emu

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"vpad/emu/log"
)

// ConfigSettleDelay is how long the config file must stay untouched before
// it's reloaded.
const ConfigSettleDelay = 200 * time.Millisecond

// WatchConfig calls fn with the new configuration each time the file at path
// is modified, once it has settled. A file that fails to load is reported
// and ignored. WatchConfig blocks until ctx is done.
func WatchConfig(ctx context.Context, path string, settle time.Duration, fn func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file rather than writing it, so watch the
	// directory.
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}

	reload := func() {
		if ctx.Err() != nil {
			return
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			log.ModConfig.WarnZ("config reload failed").Error("err", err).End()
			return
		}
		log.ModConfig.InfoZ("config reloaded").String("path", path).End()
		fn(cfg)
	}
	debounced := debounce.New(settle)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.ModConfig.DebugZ("config file changed").Stringer("op", ev.Op).End()
			debounced(reload)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.ModConfig.WarnZ("config watcher error").Error("err", err).End()
		}
	}
}
