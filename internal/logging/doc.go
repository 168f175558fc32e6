// Package logging assembles the structured slog loggers used across vlc and
// the diagnostic Sink every subsystem reports through.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes helpers that enforce the event_type / error_hint / impact shape
// on warnings. The Sink is created before anything else in the process and
// destroyed last; it tolerates concurrent use from the signal dispatcher.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
