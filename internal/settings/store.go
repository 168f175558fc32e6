// Package settings implements the process-wide configuration store: a
// string-keyed table written during the single-threaded configuration phase
// and read by subsystems afterwards.
package settings

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrFrozen is returned by writes after the configuration phase ended.
var ErrFrozen = errors.New("configuration store is frozen")

// Store maps keys to string values. Keys are unique, the last write wins and
// entries are never deleted.
type Store struct {
	mu     sync.Mutex
	values map[string]string
	frozen atomic.Bool
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Set writes value under key.
func (s *Store) Set(key, value string) error {
	key = normalizeKey(key)
	if key == "" {
		return errors.New("configuration store: empty key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen.Load() {
		return fmt.Errorf("set %q: %w", key, ErrFrozen)
	}
	s.values[key] = value
	return nil
}

// SetInt writes the decimal rendering of value under key.
func (s *Store) SetInt(key string, value int) error {
	return s.Set(key, strconv.Itoa(value))
}

// Freeze ends the configuration phase. Later writes fail with ErrFrozen and
// reads no longer take the lock.
func (s *Store) Freeze() {
	s.mu.Lock()
	s.frozen.Store(true)
	s.mu.Unlock()
}

// Frozen reports whether the configuration phase ended.
func (s *Store) Frozen() bool {
	return s.frozen.Load()
}

// Lookup returns the value stored under key.
func (s *Store) Lookup(key string) (string, bool) {
	key = normalizeKey(key)
	if s.frozen.Load() {
		value, ok := s.values[key]
		return value, ok
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// String returns the value under key or def when absent.
func (s *Store) String(key, def string) string {
	if value, ok := s.Lookup(key); ok {
		return value
	}
	return def
}

// Int parses the value under key as an integer. Like strtol with base 0 it
// accepts decimal, 0x hexadecimal and leading-zero octal. The whole value must
// be consumed, otherwise def is returned.
func (s *Store) Int(key string, def int) int {
	value, ok := s.Lookup(key)
	if !ok {
		return def
	}
	parsed, ok := parseInt(value)
	if !ok {
		return def
	}
	return parsed
}

// Bool interprets the integer value under key as a boolean.
func (s *Store) Bool(key string, def bool) bool {
	fallback := 0
	if def {
		fallback = 1
	}
	return s.Int(key, fallback) != 0
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Keys returns every key in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Snapshot returns a copy of every entry.
func (s *Store) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func parseInt(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	body := value
	negative := false
	switch body[0] {
	case '+', '-':
		negative = body[0] == '-'
		body = body[1:]
	}
	if body == "" || strings.ContainsAny(body, "_+-") {
		return 0, false
	}
	base := 10
	switch {
	case len(body) > 2 && (body[:2] == "0x" || body[:2] == "0X"):
		base, body = 16, body[2:]
	case len(body) > 1 && body[0] == '0':
		base, body = 8, body[1:]
	}
	parsed, err := strconv.ParseInt(body, base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	if negative {
		parsed = -parsed
	}
	return int(parsed), true
}
