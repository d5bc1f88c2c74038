package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the snapdiff configuration.
type Config struct {
	GitBin      string `yaml:"gitBin" json:"gitBin"`
	CommitLimit int    `yaml:"commitLimit" json:"commitLimit"`
	Format      string `yaml:"format" json:"format"`
	LogLevel    string `yaml:"logLevel" json:"logLevel"`
	LogFile     string `yaml:"logFile,omitempty" json:"logFile,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		GitBin:      "git",
		CommitLimit: 50,
		Format:      "text",
		LogLevel:    "warn",
	}
}

// ConfigDir returns the platform-appropriate config directory for snapdiff.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snapdiff"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "snapdiff"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "snapdiff"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "snapdiff"), nil
	default:
		return filepath.Join(home, ".config", "snapdiff"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.GitBin != "" {
		dst.GitBin = src.GitBin
	}
	if src.CommitLimit > 0 {
		dst.CommitLimit = src.CommitLimit
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("SNAPDIFF_GIT_BIN"); v != "" {
		cfg.GitBin = v
	}
	if v := os.Getenv("SNAPDIFF_COMMIT_LIMIT"); v != "" {
		n, err := positiveInt("SNAPDIFF_COMMIT_LIMIT", v)
		if err != nil {
			return err
		}
		cfg.CommitLimit = n
	}
	if v := os.Getenv("SNAPDIFF_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("SNAPDIFF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SNAPDIFF_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "gitBin":
		cfg.GitBin = value
	case "commitLimit":
		n, err := positiveInt("commitLimit", value)
		if err != nil {
			return err
		}
		cfg.CommitLimit = n
	case "format":
		switch value {
		case "text", "json", "markdown":
		default:
			return fmt.Errorf("format must be text, json, or markdown, got %q", value)
		}
		cfg.Format = value
	case "logLevel":
		cfg.LogLevel = value
	case "logFile":
		cfg.LogFile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func positiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return n, nil
}
