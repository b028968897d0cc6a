package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/vconsole-setup/internal/cascade"
	"github.com/eugenenazirov/vconsole-setup/internal/console"
	"github.com/eugenenazirov/vconsole-setup/internal/loader"
)

const (
	defaultLogLevel    = "info"
	defaultLogEncoding = "console"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Device         string   `yaml:"device"`
	Root           string   `yaml:"root"`
	Variant        string   `yaml:"variant"`
	CmdlinePath    string   `yaml:"cmdline_path"`
	ConfigPath     string   `yaml:"vconsole_conf_path"`
	LoadKeysPath   string   `yaml:"loadkeys_path"`
	SetFontPath    string   `yaml:"setfont_path"`
	DefaultKeymap  string   `yaml:"default_keymap"`
	DefaultFont    string   `yaml:"default_font"`
	UTF8TogglePath string   `yaml:"utf8_toggle_path"`
	LogLevel       string   `yaml:"log_level"`
	LogEncoding    string   `yaml:"log_encoding"`
	LogOutputs     []string `yaml:"log_outputs"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile   string
	Device       *string
	Variant      *string
	Root         *string
	LoadKeysPath *string
	SetFontPath  *string
	LogLevel     *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Device:         console.DefaultDevice,
		Root:           "/",
		Variant:        cascade.GenericVariant,
		CmdlinePath:    cascade.DefaultCmdlinePath,
		ConfigPath:     cascade.DefaultConfigPath,
		LoadKeysPath:   loader.DefaultLoadKeys,
		SetFontPath:    loader.DefaultSetFont,
		DefaultKeymap:  loader.DefaultKeymap,
		DefaultFont:    loader.DefaultFont,
		UTF8TogglePath: console.DefaultUTF8TogglePath,
		LogLevel:       defaultLogLevel,
		LogEncoding:    defaultLogEncoding,
		LogOutputs:     []string{"stderr"},
	}
}

// loadFromFile loads configuration from a YAML file. Keys absent from the
// file leave the corresponding field empty.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig copies every non-empty YAML value onto cfg.
func applyYAMLConfig(cfg *Config, yamlCfg *Config) {
	setString(&cfg.Device, yamlCfg.Device)
	setString(&cfg.Root, yamlCfg.Root)
	setString(&cfg.Variant, yamlCfg.Variant)
	setString(&cfg.CmdlinePath, yamlCfg.CmdlinePath)
	setString(&cfg.ConfigPath, yamlCfg.ConfigPath)
	setString(&cfg.LoadKeysPath, yamlCfg.LoadKeysPath)
	setString(&cfg.SetFontPath, yamlCfg.SetFontPath)
	setString(&cfg.DefaultKeymap, yamlCfg.DefaultKeymap)
	setString(&cfg.DefaultFont, yamlCfg.DefaultFont)
	setString(&cfg.UTF8TogglePath, yamlCfg.UTF8TogglePath)
	setString(&cfg.LogLevel, yamlCfg.LogLevel)
	setString(&cfg.LogEncoding, yamlCfg.LogEncoding)

	if len(yamlCfg.LogOutputs) > 0 {
		cfg.LogOutputs = yamlCfg.LogOutputs
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	setString(&cfg.Variant, os.Getenv("VCONSOLE_SETUP_VARIANT"))
	setString(&cfg.Root, os.Getenv("VCONSOLE_SETUP_ROOT"))
	setString(&cfg.LogLevel, os.Getenv("SYSTEMD_LOG_LEVEL"))
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	for _, o := range []struct {
		dst *string
		src *string
	}{
		{&cfg.Device, overrides.Device},
		{&cfg.Variant, overrides.Variant},
		{&cfg.Root, overrides.Root},
		{&cfg.LoadKeysPath, overrides.LoadKeysPath},
		{&cfg.SetFontPath, overrides.SetFontPath},
		{&cfg.LogLevel, overrides.LogLevel},
	} {
		if o.src != nil {
			setString(o.dst, *o.src)
		}
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if _, err := cascade.LookupVariant(cfg.Variant); err != nil {
		return fmt.Errorf("variant must be one of %s: %w", strings.Join(cascade.VariantNames(), ", "), err)
	}
	if cfg.Device == "" {
		return errors.New("device cannot be empty")
	}
	if !filepath.IsAbs(cfg.Root) {
		return fmt.Errorf("root must be an absolute path, got %q", cfg.Root)
	}
	if cfg.LoadKeysPath == "" || cfg.SetFontPath == "" {
		return errors.New("helper paths cannot be empty")
	}
	if cfg.DefaultKeymap == "" || cfg.DefaultFont == "" {
		return errors.New("default keymap and font cannot be empty")
	}
	if cfg.LogEncoding != "console" && cfg.LogEncoding != "json" {
		return fmt.Errorf("log encoding must be console or json, got %q", cfg.LogEncoding)
	}
	return nil
}

// RootedPath resolves an absolute path below cfg.Root.
func (c Config) RootedPath(path string) string {
	if c.Root == "" || c.Root == "/" || path == "" {
		return path
	}
	return filepath.Join(c.Root, path)
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
