package config

const (
	defaultLogDir          = "~/.local/share/vlc/logs"
	defaultRuntimeDir      = "~/.local/share/vlc/run"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultInterfaceModule = "dummy"
	defaultInterfacePollMS = 100
	defaultChannelServer   = "138.195.143.220"
	defaultChannelPort     = 6010
	defaultChannelLockName = "channels.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:     defaultLogDir,
			RuntimeDir: defaultRuntimeDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Interface: Interface{
			Module: defaultInterfaceModule,
			PollMS: defaultInterfacePollMS,
		},
		Channels: Channels{
			Server: defaultChannelServer,
			Port:   defaultChannelPort,
		},
		Settings: map[string]string{},
	}
}
