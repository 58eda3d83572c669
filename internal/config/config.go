// Package config handles loading and saving user configuration for paramclip.
//
// Configuration sources (in priority order):
//  1. Environment variables (PARAMCLIP_*)
//  2. Config file (~/.config/paramclip/config.yaml or --config)
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/paramclip/internal/clipboard"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigName is the config file name without extension.
	DefaultConfigName = "config"
	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "PARAMCLIP"
)

// Fallback selects the sink used by the legacy clipboard backend.
type Fallback string

const (
	FallbackAuto    Fallback = "auto"
	FallbackCommand Fallback = "command"
	FallbackOSC52   Fallback = "osc52"
)

// Config holds all user configuration.
type Config struct {
	Clipboard ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// ClipboardConfig holds clipboard backend settings.
type ClipboardConfig struct {
	Mode       string   `mapstructure:"mode" yaml:"mode"`               // auto, modern, legacy
	Fallback   string   `mapstructure:"fallback" yaml:"fallback"`       // auto, command, osc52
	Command    []string `mapstructure:"command" yaml:"command"`         // e.g. ["xclip", "-selection", "clipboard"]
	StagingDir string   `mapstructure:"staging_dir" yaml:"staging_dir"` // empty means os.TempDir()
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format string `mapstructure:"format" yaml:"format"` // text, json
	File   string `mapstructure:"file" yaml:"file"`
	Stderr string `mapstructure:"stderr" yaml:"stderr"` // auto, on, off
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Clipboard: ClipboardConfig{
			Mode:     string(clipboard.ModeAuto),
			Fallback: string(FallbackAuto),
			Command:  []string{},
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
			Stderr: "auto",
		},
	}
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing default file is not an error; a missing
// explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := GetConfigDir()
		if err == nil {
			v.AddConfigPath(dir)
			v.SetConfigName(DefaultConfigName)
			v.SetConfigType("yaml")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("clipboard.mode", d.Clipboard.Mode)
	v.SetDefault("clipboard.fallback", d.Clipboard.Fallback)
	v.SetDefault("clipboard.command", d.Clipboard.Command)
	v.SetDefault("clipboard.staging_dir", d.Clipboard.StagingDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.stderr", d.Log.Stderr)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := clipboard.ParseMode(c.Clipboard.Mode); err != nil {
		return err
	}

	if _, err := ParseFallback(c.Clipboard.Fallback); err != nil {
		return err
	}

	if dir := c.Clipboard.StagingDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("clipboard staging_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("clipboard staging_dir is not a directory: %s", dir)
		}
	}

	return nil
}

// ParseFallback validates a fallback string. The empty string means auto.
func ParseFallback(s string) (Fallback, error) {
	switch Fallback(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackAuto:
		return FallbackAuto, nil
	case FallbackCommand:
		return FallbackCommand, nil
	case FallbackOSC52:
		return FallbackOSC52, nil
	default:
		return "", fmt.Errorf("invalid clipboard fallback: %q (allowed: auto, command, osc52)", s)
	}
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data := append([]byte(fileHeader), out...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

const fileHeader = `# paramclip configuration
#
# clipboard.mode:     auto | modern | legacy
# clipboard.fallback: auto | command | osc52 (legacy backend sink)
# clipboard.command:  copy command reading stdin, e.g. [wl-copy]
# log.level:          error | warn | info | debug
#
# Every key can be overridden with PARAMCLIP_<SECTION>_<KEY>.

`

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "paramclip"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigName+".yaml"), nil
}
