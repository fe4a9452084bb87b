package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "finplan"

// Settings holds per-user CLI preferences
type Settings struct {
	Output     OutputSettings     `toml:"output"`
	Simulation SimulationSettings `toml:"simulation"`
}

// OutputSettings picks the default report format
type OutputSettings struct {
	Format string `toml:"format"`
}

// SimulationSettings holds defaults for repeated scenario trials.
// A zero seed means a fresh seed per run.
type SimulationSettings struct {
	Trials int   `toml:"trials"`
	Seed   int64 `toml:"seed,omitempty"`
}

// DefaultSettings returns the built-in preferences
func DefaultSettings() Settings {
	return Settings{
		Output:     OutputSettings{Format: "console"},
		Simulation: SimulationSettings{Trials: 500},
	}
}

// SettingsDir returns the XDG-compliant config directory
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// SettingsPath returns the full path to the settings file
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads the settings file, returning defaults if it doesn't exist
func LoadSettings() (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing config: %w", err)
	}
	return s, nil
}

// SaveSettings writes the settings to disk
func SaveSettings(s Settings) error {
	if err := os.MkdirAll(SettingsDir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(SettingsPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}
