package testsupport

import (
	"path/filepath"
	"strings"
	"testing"

	"vlc/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.RuntimeDir = filepath.Join(base, "run")
	cfgVal.Interface.PollMS = 5
	cfgVal.Channels.Server = "127.0.0.1"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithInterfaceModule sets the default interface module.
func WithInterfaceModule(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Interface.Module = name
	}
}

// WithChannelServer points channel join requests at host:port.
func WithChannelServer(host string, port int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Channels.Server = host
		b.cfg.Channels.Port = port
	}
}

// WithChannelList writes lines into a channel list file and references it
// from the config.
func WithChannelList(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "channels.txt")
		WriteFile(b.t, path, strings.Join(lines, "\n")+"\n")
		b.cfg.Channels.ListFile = path
	}
}

// WithSettings seeds the [settings] table.
func WithSettings(values map[string]string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Settings = values
	}
}

// WithLogFile tees diagnostics into a file under the test directory.
func WithLogFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, name)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
