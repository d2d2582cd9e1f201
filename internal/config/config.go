// Package config resolves the store path, config directory and logging settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML settings file inside the config directory.
	ConfigFile = "config.toml"

	// DefaultStoreFile is the store location relative to the working directory.
	DefaultStoreFile = "data/todo.txt"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultLogLevel keeps routine output quiet.
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the human-readable formatter.
	DefaultLogFormat = "text"
)

// Environment overrides.
const (
	EnvStoreFile  = "TODO_FILE"
	EnvLogLevel   = "TODO_LOG_LEVEL"
	EnvRemoteList = "TODO_REMOTE_LIST"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// WorkDir is the directory relative store paths resolve against.
	WorkDir string

	// StorePath is the backing task file.
	StorePath string

	// Lock holds an exclusive file lock for the duration of a command.
	Lock bool

	// LogLevel and LogFormat configure the stderr logger.
	LogLevel  string
	LogFormat string

	// LogTimestamps prefixes each log line with the time.
	LogTimestamps bool

	// RemoteList names the Google Tasks list for push and pull.
	// Empty means the default list.
	RemoteList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig is the shape of config.toml.
type fileConfig struct {
	StorePath     string `toml:"store_path"`
	Lock          *bool  `toml:"lock"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	RemoteList    string `toml:"remote_list"`
}

// New creates a Config with defaults only.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir, workDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       expandPath(dir),
		WorkDir:   workDir,
		StorePath: filepath.Join(workDir, DefaultStoreFile),
		Lock:      true,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load builds a Config from defaults, then config.toml in the config
// directory, then environment variables. Flags are applied by the caller.
func Load(configDir, workDir string) (*Config, error) {
	cfg := New(configDir, workDir)

	if err := cfg.loadFile(cfg.FilePath()); err != nil {
		return nil, err
	}
	cfg.loadEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	if fc.StorePath != "" {
		c.StorePath = c.ResolvePath(fc.StorePath)
	}
	if fc.Lock != nil {
		c.Lock = *fc.Lock
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	c.LogTimestamps = fc.LogTimestamps
	if fc.RemoteList != "" {
		c.RemoteList = fc.RemoteList
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvStoreFile); v != "" {
		c.StorePath = c.ResolvePath(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvRemoteList); v != "" {
		c.RemoteList = v
	}
}

// ResolvePath expands ~ and makes p absolute against WorkDir.
func (c *Config) ResolvePath(p string) string {
	p = expandPath(p)
	if filepath.IsAbs(p) || c.WorkDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.WorkDir, p)
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
