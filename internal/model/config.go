package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// StorageConfig holds where the local database lives.
type StorageConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything in RAM.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds where diagnostic output goes while the TUI owns the terminal.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Members is the fixed list of people a task can be assigned to.
	Members []string `mapstructure:"members" yaml:"members"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// DefaultMembers is the assignee list used when none is configured.
var DefaultMembers = []string{"alice", "bob", "carol"}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/pending/config.yaml.
func DefaultConfigPath() string {
	return homePath(filepath.Join(".config", "pending", "config.yaml"), "config.yaml")
}

// DefaultDatabasePath returns ~/.local/share/pending/pending.db.
func DefaultDatabasePath() string {
	return homePath(filepath.Join(".local", "share", "pending", "pending.db"), "pending.db")
}

// DefaultLogPath returns ~/.local/state/pending/pending.log.
func DefaultLogPath() string {
	return homePath(filepath.Join(".local", "state", "pending", "pending.log"), "pending.log")
}

func homePath(rel, fallback string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fallback)
	}
	return filepath.Join(home, rel)
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Path: DefaultDatabasePath()},
		Members: append([]string(nil), DefaultMembers...),
		Log:     LogConfig{File: DefaultLogPath()},
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PENDING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.path", DefaultDatabasePath())
	v.SetDefault("members", DefaultMembers)
	v.SetDefault("log.file", DefaultLogPath())
	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults (plus any PENDING_* environment
// overrides) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	// Unmarshal reuses a non-nil slice without truncating it; the viper
	// default already covers members.
	cfg.Members = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	members := cfg.Members[:0]
	for _, m := range cfg.Members {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	cfg.Members = members

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("members", cfg.Members)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
