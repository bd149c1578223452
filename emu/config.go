package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"vpad/emu/log"
	"vpad/hw/input"
)

type Config struct {
	Input     input.Config    `toml:"input"`
	Emulation EmulationConfig `toml:"emulation"`
}

type EmulationConfig struct {
	// TickHz is the number of input samples per second.
	TickHz int `toml:"tick_hz"`
}

// TickPeriod returns the input sampling period.
func (ec EmulationConfig) TickPeriod() time.Duration {
	if ec.TickHz <= 0 {
		return input.TickPeriod
	}
	return time.Second / time.Duration(ec.TickHz)
}

const DefaultFileMode = os.FileMode(0755)

// ConfigDir returns the vpad directory inside the user config directory.
var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModConfig.FatalZ("no user config directory").Error("err", err).End()
	}
	return filepath.Join(cfgdir, "vpad")
})

const cfgFilename = "config.toml"

// DefaultConfigPath returns the path of the configuration file in the vpad
// config directory.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

func DefaultConfig() Config {
	return Config{
		Input:     input.DefaultConfig(),
		Emulation: EmulationConfig{TickHz: 60},
	}
}

// LoadConfig loads the configuration file at path. Settings missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.Input.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration at path, or provide a default
// one.
func LoadConfigOrDefault(path string) Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModConfig.WarnZ("using default config").Error("err", err).End()
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes cfg at path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultFileMode); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}
