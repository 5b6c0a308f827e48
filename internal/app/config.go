package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envHome      = "FRESHPRINT_HOME"
	envLogLevel  = "FRESHPRINT_LOG_LEVEL"
	envLogFormat = "FRESHPRINT_LOG_FORMAT"
	envListen    = "FRESHPRINT_LISTEN"
	envRateRPS   = "FRESHPRINT_RATE_LIMIT_RPS"
	envRateBurst = "FRESHPRINT_RATE_LIMIT_BURST"

	configFilename = "config.yaml"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string       `yaml:"home"`      // key directory, e.g. $HOME/.freshprint
	LogLevel  string       `yaml:"logLevel"`  // debug, info, warn, error
	LogFormat string       `yaml:"logFormat"` // console or json
	Server    ServerConfig `yaml:"server"`
}

// ServerConfig configures the verifier HTTP server.
type ServerConfig struct {
	Listen         string  `yaml:"listen"`
	RateLimitRPS   float64 `yaml:"rateLimitRPS"` // <= 0 disables limiting
	RateLimitBurst int     `yaml:"rateLimitBurst"`
	MaxBodyBytes   int64   `yaml:"maxBodyBytes"`
}

// DefaultConfig returns the built-in defaults. Home is left empty and
// resolved by ResolveHome.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "console",
		Server: ServerConfig{
			Listen:         ":8080",
			RateLimitRPS:   5,
			RateLimitBurst: 20,
			MaxBodyBytes:   16 << 10,
		},
	}
}

// LoadConfig returns defaults merged with the YAML file at path and then the
// environment. An empty path tries config.yaml in the resolved home and
// silently skips it when missing; an explicit path must exist.
func LoadConfig(path, home string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		if home == "" {
			home = strings.TrimSpace(os.Getenv(envHome))
		}
		if dir, err := ResolveHome(home); err == nil {
			path = filepath.Join(dir, configFilename)
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var parsed Config
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
			Merge(&cfg, parsed)
		case explicit || !os.IsNotExist(err):
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge copies every non-zero field of src into dst.
func Merge(dst *Config, src Config) {
	if src.Home != "" {
		dst.Home = src.Home
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.Server.Listen != "" {
		dst.Server.Listen = src.Server.Listen
	}
	if src.Server.RateLimitRPS != 0 {
		dst.Server.RateLimitRPS = src.Server.RateLimitRPS
	}
	if src.Server.RateLimitBurst != 0 {
		dst.Server.RateLimitBurst = src.Server.RateLimitBurst
	}
	if src.Server.MaxBodyBytes != 0 {
		dst.Server.MaxBodyBytes = src.Server.MaxBodyBytes
	}
}

// ApplyEnvOverrides applies FRESHPRINT_* variables on top of cfg.
func ApplyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envHome)); v != "" {
		cfg.Home = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogFormat)); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv(envListen)); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(envRateRPS)); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envRateRPS, err)
		}
		cfg.Server.RateLimitRPS = rps
	}
	if v := strings.TrimSpace(os.Getenv(envRateBurst)); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRateBurst, err)
		}
		cfg.Server.RateLimitBurst = burst
	}
	return nil
}

// ResolveHome returns home, or ~/.freshprint when empty.
func ResolveHome(home string) (string, error) {
	if home != "" {
		return home, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".freshprint"), nil
}
