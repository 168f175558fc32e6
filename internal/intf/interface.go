// Package intf implements the interface subsystem: the cooperative stop
// flag shared with the signal path and the interactive modules that run
// until it is raised.
package intf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"vlc/internal/bank"
	"vlc/internal/core"
	"vlc/internal/logging"
	"vlc/internal/settings"
)

// DefaultModule is used when neither the store nor the config names one.
const DefaultModule = "dummy"

const defaultPoll = 100 * time.Millisecond

// Interface is a created interface subsystem.
type Interface struct {
	name    string
	module  core.InterfaceModule
	logger  *slog.Logger
	stop    atomic.Bool
	running atomic.Bool
	closed  atomic.Bool
}

// Register adds the built-in interface modules to modules.
func Register(modules *bank.Bank[core.InterfaceFactory]) error {
	if err := modules.Register("dummy", newDummy); err != nil {
		return err
	}
	return modules.Register("tui", newTUI)
}

// ModuleName returns the interface module selected for root.
func ModuleName(root *core.Context) string {
	def := DefaultModule
	if root.Config != nil && strings.TrimSpace(root.Config.Interface.Module) != "" {
		def = root.Config.Interface.Module
	}
	return root.Settings.String(settings.KeyInterface, def)
}

// Create resolves the selected module in the module bank and builds it.
func Create(root *core.Context) (*Interface, error) {
	if root == nil || root.Modules == nil {
		return nil, errors.New("create interface: module bank not initialized")
	}
	name := ModuleName(root)
	factory, err := root.Modules.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("create interface: %w", err)
	}
	module, err := factory(root)
	if err != nil {
		return nil, fmt.Errorf("create interface %q: %w", name, err)
	}
	return &Interface{
		name:   name,
		module: module,
		logger: logging.NewComponentLogger(root.Logger, "intf"),
	}, nil
}

// Name returns the module name.
func (i *Interface) Name() string {
	return i.name
}

// RequestStop raises the stop flag. It is safe to call from any goroutine,
// any number of times.
func (i *Interface) RequestStop() {
	i.stop.Store(true)
}

// StopRequested reports whether the stop flag is raised.
func (i *Interface) StopRequested() bool {
	return i.stop.Load()
}

// Run blocks until the module returns.
func (i *Interface) Run(ctx context.Context) error {
	if i.closed.Load() {
		return errors.New("run interface: closed")
	}
	if !i.running.CompareAndSwap(false, true) {
		return errors.New("run interface: already running")
	}
	defer i.running.Store(false)

	i.logger.Debug("interface running", logging.String("module", i.name))
	if err := i.module.Run(ctx, i); err != nil {
		return fmt.Errorf("run interface %q: %w", i.name, err)
	}
	i.logger.Debug("interface returned", logging.String("module", i.name), logging.Bool("stop_requested", i.StopRequested()))
	return nil
}

// Close releases the module. Calling Close more than once is a no-op.
func (i *Interface) Close() error {
	if !i.closed.CompareAndSwap(false, true) {
		return nil
	}
	return i.module.Close()
}

func pollInterval(root *core.Context) time.Duration {
	def := 0
	if root.Config != nil {
		def = root.Config.Interface.PollMS
	}
	if ms := root.Settings.Int(settings.KeyPollMS, def); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultPoll
}
