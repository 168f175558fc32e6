package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath names the environment variable that overrides the config file location.
const EnvConfigPath = "VLC_CONFIG"

// Paths contains directory configuration.
type Paths struct {
	LogDir     string `toml:"log_dir"`
	RuntimeDir string `toml:"runtime_dir"`
}

// Logging contains configuration for diagnostic output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, tees diagnostics into the given path in addition to stderr.
	File string `toml:"file"`
}

// Interface contains defaults for the interface subsystem.
type Interface struct {
	Module string `toml:"module"`
	PollMS int    `toml:"poll_ms"`
}

// Channels contains configuration for the optional channel networking subsystem.
type Channels struct {
	ListFile string `toml:"list_file"`
	Server   string `toml:"server"`
	Port     int    `toml:"port"`
	LockPath string `toml:"lock_path"`
}

// Config encapsulates the file-backed configuration.
//
// Configuration sections:
//   - Paths: log and runtime directories
//   - Logging: diagnostic format, level and optional file tee
//   - Interface: default interface module and stop-flag poll interval
//   - Channels: channel list file, channel server and local lock
//   - Settings: defaults for the configuration store, keyed like the store
type Config struct {
	Paths     Paths             `toml:"paths"`
	Logging   Logging           `toml:"logging"`
	Interface Interface         `toml:"interface"`
	Channels  Channels          `toml:"channels"`
	Settings  map[string]string `toml:"settings"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vlc/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are returned and the boolean result reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Fallback returns normalized defaults for runs whose config file cannot be
// used.
func Fallback() *Config {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		cfg.Paths = Paths{}
	}
	return &cfg
}

// LoadFromEnv loads the configuration named by VLC_CONFIG in env, falling
// back to the default search locations.
func LoadFromEnv(env []string) (*Config, string, bool, error) {
	return Load(lookupEnv(env, EnvConfigPath))
}

func lookupEnv(env []string, key string) string {
	prefix := key + "="
	value := ""
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			value = strings.TrimSpace(entry[len(prefix):])
		}
	}
	return value
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vlc.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the process writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.RuntimeDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ChannelLockPath returns the lock file guarding local channel ownership.
func (c *Config) ChannelLockPath() string {
	if c.Channels.LockPath != "" {
		return c.Channels.LockPath
	}
	return filepath.Join(c.Paths.RuntimeDir, defaultChannelLockName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
