package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"vlc/internal/channels"
	"vlc/internal/core"
	"vlc/internal/cpu"
	"vlc/internal/intf"
	"vlc/internal/logging"
	"vlc/internal/playlist"
	"vlc/internal/signals"
)

// Sink is the diagnostic sink of a run.
type Sink interface {
	Logger() *slog.Logger
	SetVerbosity(warningLevel int)
	Close() error
}

// Network is the channel networking subsystem.
type Network interface {
	Join(channel int) error
	Close() error
}

// Interface is the interface subsystem.
type Interface interface {
	core.Handle
	Run(ctx context.Context) error
	Close() error
}

// SignalController bridges OS signals to the published interface handle.
type SignalController interface {
	Install(source signals.HandleSource) error
	Uninstall()
}

// Subsystems builds every resource a run acquires. Tests replace single
// factories to drive each transition path.
type Subsystems struct {
	Probe            func() cpu.Capabilities
	Sink             func(opts logging.Options) (Sink, error)
	HostInit         func(root *core.Context) error
	HostEnd          func(root *core.Context)
	Playlist         func() (*playlist.Playlist, error)
	RegisterBuiltins func(root *core.Context) error
	Channels         func(root *core.Context) (Network, error)
	Interface        func(root *core.Context) (Interface, error)
	Signals          func(logger *slog.Logger) SignalController
}

// DefaultSubsystems wires the real implementations.
func DefaultSubsystems() Subsystems {
	return Subsystems{
		Probe: cpu.Detect,
		Sink: func(opts logging.Options) (Sink, error) {
			sink, err := logging.NewSink(opts)
			if err != nil {
				return nil, err
			}
			return sink, nil
		},
		HostInit: func(*core.Context) error { return nil },
		HostEnd:  func(*core.Context) {},
		Playlist: func() (*playlist.Playlist, error) {
			return playlist.New(), nil
		},
		RegisterBuiltins: registerBuiltins,
		Channels: func(root *core.Context) (Network, error) {
			network, err := channels.New(root)
			if err != nil {
				return nil, err
			}
			return network, nil
		},
		Interface: func(root *core.Context) (Interface, error) {
			iface, err := intf.Create(root)
			if err != nil {
				return nil, err
			}
			return iface, nil
		},
		Signals: func(logger *slog.Logger) SignalController {
			return signals.New(logger)
		},
	}
}

func (s Subsystems) withDefaults() Subsystems {
	def := DefaultSubsystems()
	if s.Probe == nil {
		s.Probe = def.Probe
	}
	if s.Sink == nil {
		s.Sink = def.Sink
	}
	if s.HostInit == nil {
		s.HostInit = def.HostInit
	}
	if s.HostEnd == nil {
		s.HostEnd = def.HostEnd
	}
	if s.Playlist == nil {
		s.Playlist = def.Playlist
	}
	if s.RegisterBuiltins == nil {
		s.RegisterBuiltins = def.RegisterBuiltins
	}
	if s.Channels == nil {
		s.Channels = def.Channels
	}
	if s.Interface == nil {
		s.Interface = def.Interface
	}
	if s.Signals == nil {
		s.Signals = def.Signals
	}
	return s
}

func registerBuiltins(root *core.Context) error {
	return errors.Join(
		intf.Register(root.Modules),
		intf.RegisterOutputs(root.AudioOutputs, root.VideoOutputs),
	)
}
