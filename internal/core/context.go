// Package core defines the root context shared by every subsystem of a run.
// The orchestrator builds one Context and passes it to each constructor;
// nothing in the process reaches it through globals.
package core

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"vlc/internal/bank"
	"vlc/internal/config"
	"vlc/internal/cpu"
	"vlc/internal/logging"
	"vlc/internal/playlist"
	"vlc/internal/settings"
)

var (
	// ErrInterfaceSet is returned when an interface handle is already published.
	ErrInterfaceSet = errors.New("interface handle already set")
	// ErrNoInterface is returned when clearing an unset interface handle.
	ErrNoInterface = errors.New("no interface handle set")
)

// Handle is the part of a running interface the signal path may touch.
type Handle interface {
	RequestStop()
}

// StopFlag is the read side of an interface stop flag.
type StopFlag interface {
	StopRequested() bool
}

// InterfaceModule drives the interactive part of a run until told to stop.
type InterfaceModule interface {
	Run(ctx context.Context, stop StopFlag) error
	Close() error
}

// InterfaceFactory builds an interface module for a run.
type InterfaceFactory func(root *Context) (InterfaceModule, error)

// Output is an audio or video output instance.
type Output interface {
	Name() string
	Close() error
}

// OutputFactory builds an audio or video output.
type OutputFactory func(root *Context) (Output, error)

// Context is the root context of a run.
type Context struct {
	RunID           string
	Capabilities    cpu.Capabilities
	AudioEnabled    bool
	VideoEnabled    bool
	ChannelsEnabled bool
	WarningLevel    int
	Argv0           string

	Settings *settings.Store
	Config   *config.Config
	Logger   *slog.Logger

	Playlist     *playlist.Playlist
	Modules      *bank.Bank[InterfaceFactory]
	AudioOutputs *bank.Bank[OutputFactory]
	VideoOutputs *bank.Bank[OutputFactory]

	iface atomic.Pointer[handleBox]
}

type handleBox struct {
	handle Handle
}

// New returns a root context with a fresh run id and audio and video enabled.
func New(cfg *config.Config, store *settings.Store, logger *slog.Logger) *Context {
	if store == nil {
		store = settings.New()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Context{
		RunID:        uuid.NewString(),
		AudioEnabled: true,
		VideoEnabled: true,
		Settings:     store,
		Config:       cfg,
		Logger:       logger,
	}
}

// SetInterface publishes the running interface handle.
func (c *Context) SetInterface(h Handle) error {
	if h == nil {
		return errors.New("set interface: nil handle")
	}
	if !c.iface.CompareAndSwap(nil, &handleBox{handle: h}) {
		return ErrInterfaceSet
	}
	return nil
}

// Interface returns the running interface handle or nil. It takes no lock.
func (c *Context) Interface() Handle {
	if box := c.iface.Load(); box != nil {
		return box.handle
	}
	return nil
}

// ClearInterface withdraws the published interface handle.
func (c *Context) ClearInterface() error {
	if c.iface.Swap(nil) == nil {
		return ErrNoInterface
	}
	return nil
}

// DisableChannels records that channel networking is unavailable for the
// rest of the run.
func (c *Context) DisableChannels() {
	c.ChannelsEnabled = false
}
