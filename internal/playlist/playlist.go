// Package playlist holds the ordered list of input specifications given on
// the command line.
package playlist

import (
	"errors"
	"fmt"
	"sync"
)

// End inserts at the tail of the playlist.
const End = -1

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("playlist closed")

// Playlist is an ordered, concurrency-safe list of input specifications.
type Playlist struct {
	mu     sync.RWMutex
	items  []string
	closed bool
}

// New returns an empty playlist.
func New() *Playlist {
	return &Playlist{}
}

// Append adds spec at the end.
func (p *Playlist) Append(spec string) error {
	return p.Insert(End, spec)
}

// Insert adds spec before position pos, or at the end when pos is End.
func (p *Playlist) Insert(pos int, spec string) error {
	if spec == "" {
		return errors.New("insert playlist item: empty input specification")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	switch {
	case pos == End:
		p.items = append(p.items, spec)
	case pos < 0 || pos > len(p.items):
		return fmt.Errorf("insert playlist item: position %d out of range [0,%d]", pos, len(p.items))
	default:
		p.items = append(p.items, "")
		copy(p.items[pos+1:], p.items[pos:])
		p.items[pos] = spec
	}
	return nil
}

// Items returns a copy of the current entries.
func (p *Playlist) Items() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.items...)
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Close releases the entries. Closing twice is a no-op.
func (p *Playlist) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.items = nil
	return nil
}
