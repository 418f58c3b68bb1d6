package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// cliConfig holds fsmdraw preferences, stored at ~/.fsmdraw.toml.
type cliConfig struct {
	Render renderConfig `toml:"render"`
}

type renderConfig struct {
	Format string `toml:"format"` // default output format: "svg" or "png"
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

func defaultConfig() *cliConfig {
	return &cliConfig{
		Render: renderConfig{Format: "svg", Width: 800, Height: 600},
	}
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fsmdraw.toml"
	}
	return filepath.Join(home, ".fsmdraw.toml")
}

// loadConfig reads preferences, falling back to defaults when the file
// is missing or malformed.
func loadConfig() *cliConfig {
	cfg := defaultConfig()
	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, cfg)
	if cfg.Render.Format == "" {
		cfg.Render.Format = "svg"
	}
	return cfg
}

// saveConfig persists preferences. Best effort; callers ignore errors.
func saveConfig(cfg *cliConfig) error {
	f, err := os.Create(configPath())
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
