package emu

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), cfgFilename)
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 10)
	done := make(chan error)
	go func() {
		done <- WatchConfig(ctx, path, 50*time.Millisecond, func(cfg Config) { reloaded <- cfg })
	}()

	// Leave some time for the watcher to be set up, then write several times
	// in a row: a single reload is expected.
	time.Sleep(100 * time.Millisecond)
	for hz := range 5 {
		cfg := DefaultConfig()
		cfg.Emulation.TickHz = 100 + hz
		if err := SaveConfig(path, cfg); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case cfg := <-reloaded:
		if cfg.Emulation.TickHz != 104 {
			t.Errorf("reloaded tick_hz = %d, want 104", cfg.Emulation.TickHz)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("config not reloaded")
	}

	select {
	case cfg := <-reloaded:
		t.Errorf("unexpected second reload: %+v", cfg.Emulation)
	case <-time.After(300 * time.Millisecond):
	}

	// Other files of the directory are ignored.
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloaded:
		t.Errorf("reloaded after another file changed")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
