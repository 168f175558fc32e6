// Package signals bridges asynchronous OS signals to the cooperative stop
// flag of the running interface.
//
// Signals fall into two disjoint classes. Transient signals are logged and
// otherwise ignored. The first fatal signal of a run ignores the whole fatal
// class, logs at error level and raises the stop flag of the interface
// handle published on the root context, if any. Later fatal signals of the
// same run are not delivered.
package signals

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"vlc/internal/core"
	"vlc/internal/logging"
)

// Notifier is the OS signal boundary. The os/signal package implements it.
type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Ignore(sig ...os.Signal)
	Stop(c chan<- os.Signal)
	Reset(sig ...os.Signal)
}

// HandleSource publishes the currently running interface handle.
type HandleSource interface {
	Interface() core.Handle
}

type osNotifier struct{}

func (osNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (osNotifier) Ignore(sig ...os.Signal)                     { signal.Ignore(sig...) }
func (osNotifier) Stop(c chan<- os.Signal)                     { signal.Stop(c) }
func (osNotifier) Reset(sig ...os.Signal)                      { signal.Reset(sig...) }

// Option customizes a Controller.
type Option func(*Controller)

// WithNotifier replaces the OS signal boundary.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// Controller owns signal delivery for one run at a time.
type Controller struct {
	notifier  Notifier
	logger    *slog.Logger
	fatal     []os.Signal
	transient []os.Signal

	mu     sync.Mutex
	ch     chan os.Signal
	done   chan struct{}
	wg     sync.WaitGroup
	source atomic.Pointer[sourceBox]
	fired  atomic.Bool
}

type sourceBox struct {
	source HandleSource
}

// New returns a controller for the host signal classes.
func New(logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		notifier:  osNotifier{},
		logger:    logging.NewComponentLogger(logger, "signals"),
		fatal:     FatalSignals(),
		transient: TransientSignals(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Install arms both signal classes for a fresh run. Fatal signals raise the
// stop flag of whatever handle source publishes at delivery time.
func (c *Controller) Install(source HandleSource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch != nil {
		return errors.New("install signal handlers: already installed")
	}
	if source != nil {
		c.source.Store(&sourceBox{source: source})
	}
	c.fired.Store(false)
	c.ch = make(chan os.Signal, 4)
	c.done = make(chan struct{})
	c.notifier.Notify(c.ch, append(append([]os.Signal(nil), c.fatal...), c.transient...)...)

	c.wg.Add(1)
	go c.dispatch(c.ch, c.done)
	return nil
}

// Uninstall stops delivery and restores default dispositions. It is a no-op
// when nothing is installed.
func (c *Controller) Uninstall() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch == nil {
		return
	}
	c.notifier.Stop(c.ch)
	close(c.done)
	c.wg.Wait()
	c.notifier.Reset(append(append([]os.Signal(nil), c.fatal...), c.transient...)...)
	c.source.Store(nil)
	c.ch = nil
	c.done = nil
}

// Fired reports whether a fatal signal was handled during the current run.
func (c *Controller) Fired() bool {
	return c.fired.Load()
}

func (c *Controller) dispatch(ch <-chan os.Signal, done <-chan struct{}) {
	defer c.wg.Done()
	for {
		select {
		case <-done:
			return
		case sig := <-ch:
			c.Handle(sig)
		}
	}
}

// Handle processes one delivered signal.
func (c *Controller) Handle(sig os.Signal) {
	switch {
	case contains(c.fatal, sig):
		c.handleFatal(sig)
	case contains(c.transient, sig):
		c.logger.Debug("signal received, ignoring", logging.String(logging.FieldSignal, signalName(sig)))
	}
}

func (c *Controller) handleFatal(sig os.Signal) {
	if !c.fired.CompareAndSwap(false, true) {
		return
	}
	c.notifier.Ignore(c.fatal...)
	c.logger.Error("signal received, program terminating",
		logging.String(logging.FieldSignal, signalName(sig)),
		logging.String(logging.FieldEventType, "fatal_signal"),
	)
	box := c.source.Load()
	if box == nil {
		return
	}
	if handle := box.source.Interface(); handle != nil {
		handle.RequestStop()
	}
}

func contains(set []os.Signal, sig os.Signal) bool {
	for _, s := range set {
		if s == sig {
			return true
		}
	}
	return false
}
