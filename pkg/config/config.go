package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "trackly.config.toml"

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Write encodes cfg as TOML at path, replacing any existing file.
func Write(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.App.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	case "":
		c.App.Theme = ThemeLight
	default:
		return fmt.Errorf("invalid theme: %s (must be light, dark, or system)", c.App.Theme)
	}

	if c.App.Title == "" {
		c.App.Title = "Trackly"
	}

	if c.App.StartPath == "" {
		c.App.StartPath = "/"
	}
	if !strings.HasPrefix(c.App.StartPath, "/") {
		return fmt.Errorf("invalid startPath: %q (must start with /)", c.App.StartPath)
	}

	if c.Server.Port == 0 {
		c.Server.Port = 4322
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}

	if c.Build.OutDir == "" {
		c.Build.OutDir = "./dist"
	}

	if c.Build.WasmFile == "" {
		c.Build.WasmFile = "trackly.wasm"
	}
	if !strings.HasSuffix(c.Build.WasmFile, ".wasm") {
		return fmt.Errorf("invalid wasmFile: %q (must end in .wasm)", c.Build.WasmFile)
	}

	if c.Dev.DebounceMs < 0 {
		return fmt.Errorf("invalid debounceMs: %d", c.Dev.DebounceMs)
	}
	if c.Dev.DebounceMs == 0 {
		c.Dev.DebounceMs = 100
	}

	return nil
}

// Addr is the dev server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// WatchDirs returns the directories the dev server watches, defaulting to
// the build output.
func (c *Config) WatchDirs() []string {
	if len(c.Dev.Watch) > 0 {
		return c.Dev.Watch
	}
	return []string{c.Build.OutDir}
}
