// Package bank provides named registries of subsystem factories. Banks start
// empty; a missing entry surfaces as an error at lookup time.
package bank

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrNotFound reports a lookup of an unregistered name.
var ErrNotFound = errors.New("bank entry not found")

// Bank maps names to factories of type F.
type Bank[F any] struct {
	kind    string
	mu      sync.RWMutex
	entries map[string]F
	ready   bool
}

// New returns an uninitialized bank describing entries of the given kind.
func New[F any](kind string) *Bank[F] {
	return &Bank[F]{kind: kind}
}

// Kind returns the bank description used in errors.
func (b *Bank[F]) Kind() string {
	return b.kind
}

// Init prepares the bank for registration. It never fails.
func (b *Bank[F]) Init() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries == nil {
		b.entries = make(map[string]F)
	}
	b.ready = true
}

// End drops every entry. Later lookups report ErrNotFound.
func (b *Bank[F]) End() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	b.ready = false
}

// Register stores factory under name, replacing an earlier entry.
func (b *Bank[F]) Register(name string, factory F) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return fmt.Errorf("register %s %q: bank not initialized", b.kind, name)
	}
	if name == "" {
		return fmt.Errorf("register %s: empty name", b.kind)
	}
	b.entries[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (b *Bank[F]) Lookup(name string) (F, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	factory, ok := b.entries[name]
	if !ok {
		var zero F
		return zero, fmt.Errorf("%s %q: %w", b.kind, name, ErrNotFound)
	}
	return factory, nil
}

// Names returns registered names in sorted order.
func (b *Bank[F]) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Sorted(maps.Keys(b.entries))
}
