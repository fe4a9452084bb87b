package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	MaxTrials       int           `mapstructure:"max_trials"`
}

// LoadServerConfig reads server settings from an optional file (any format
// viper understands) overlaid with FINPLAN_* environment variables
func LoadServerConfig(path string) (*ServerConfig, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_trials", 2000)

	v.SetEnvPrefix("FINPLAN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("shutdown_timeout must be positive (got %s)", cfg.ShutdownTimeout)
	}
	if cfg.MaxTrials <= 0 {
		return nil, fmt.Errorf("max_trials must be positive (got %d)", cfg.MaxTrials)
	}
	return &cfg, nil
}
