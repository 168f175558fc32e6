package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeChannels(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeInterface()
	c.normalizeSettings()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.RuntimeDir) == "" {
		c.Paths.RuntimeDir = defaultRuntimeDir
	}
	if c.Paths.RuntimeDir, err = expandPath(c.Paths.RuntimeDir); err != nil {
		return fmt.Errorf("paths.runtime_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeChannels() error {
	var err error
	c.Channels.Server = strings.TrimSpace(c.Channels.Server)
	if c.Channels.Server == "" {
		c.Channels.Server = defaultChannelServer
	}
	if c.Channels.Port == 0 {
		c.Channels.Port = defaultChannelPort
	}
	if c.Channels.ListFile, err = expandPath(strings.TrimSpace(c.Channels.ListFile)); err != nil {
		return fmt.Errorf("channels.list_file: %w", err)
	}
	if c.Channels.LockPath, err = expandPath(strings.TrimSpace(c.Channels.LockPath)); err != nil {
		return fmt.Errorf("channels.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}

func (c *Config) normalizeInterface() {
	c.Interface.Module = strings.ToLower(strings.TrimSpace(c.Interface.Module))
	if c.Interface.Module == "" {
		c.Interface.Module = defaultInterfaceModule
	}
	if c.Interface.PollMS <= 0 {
		c.Interface.PollMS = defaultInterfacePollMS
	}
}

func (c *Config) normalizeSettings() {
	if c.Settings == nil {
		c.Settings = map[string]string{}
		return
	}
	normalized := make(map[string]string, len(c.Settings))
	for key, value := range c.Settings {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		normalized[key] = value
	}
	c.Settings = normalized
}
