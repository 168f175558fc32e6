package logging

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// Sink is the process diagnostic sink. It is created before option parsing,
// so its verbosity is adjusted afterwards through SetVerbosity.
type Sink struct {
	logger *slog.Logger
	level  *slog.LevelVar
	base   slog.Level
	closer io.Closer
	closed atomic.Bool
}

// NewSink opens the outputs described by opts and returns a ready sink.
func NewSink(opts Options) (*Sink, error) {
	base := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(base)

	logger, closer, err := newLogger(opts, levelVar)
	if err != nil {
		return nil, fmt.Errorf("create diagnostic sink: %w", err)
	}
	return &Sink{logger: logger, level: levelVar, base: base, closer: closer}, nil
}

// Logger returns the structured logger backing the sink.
func (s *Sink) Logger() *slog.Logger {
	if s == nil {
		return NewNop()
	}
	return s.logger
}

// SetVerbosity lowers the minimum level according to a warning level
// accumulated from repeated -v flags. It never raises the configured level.
func (s *Sink) SetVerbosity(warningLevel int) {
	if s == nil {
		return
	}
	s.level.Set(VerbosityLevel(s.base, warningLevel))
}

// Level reports the current minimum level.
func (s *Sink) Level() slog.Level {
	return s.level.Level()
}

// Close releases file outputs. Calling Close more than once is a no-op.
func (s *Sink) Close() error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.closer.Close()
}

// VerbosityLevel maps a warning level onto a slog level: 0 keeps base,
// 1 selects debug and every further step goes one level below debug.
func VerbosityLevel(base slog.Level, warningLevel int) slog.Level {
	if warningLevel <= 0 {
		return base
	}
	return min(base, slog.LevelDebug-slog.Level(warningLevel-1))
}
