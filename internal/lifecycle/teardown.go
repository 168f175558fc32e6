package lifecycle

import (
	"errors"
	"fmt"
)

type release struct {
	name string
	fn   func() error
}

// teardown releases acquired resources exactly once, last acquired first.
type teardown struct {
	entries []release
	trace   func(Event)
}

func (t *teardown) push(name string, fn func() error) {
	t.entries = append(t.entries, release{name: name, fn: fn})
	t.emit(Event{Kind: EventAcquire, Resource: name})
}

func (t *teardown) depth() int {
	return len(t.entries)
}

// unwindTo releases entries until depth entries remain.
func (t *teardown) unwindTo(depth int) error {
	var errs []error
	for len(t.entries) > depth {
		last := t.entries[len(t.entries)-1]
		t.entries = t.entries[:len(t.entries)-1]
		t.emit(Event{Kind: EventRelease, Resource: last.name})
		if last.fn == nil {
			continue
		}
		if err := last.fn(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", last.name, err))
		}
	}
	return errors.Join(errs...)
}

func (t *teardown) unwind() error {
	return t.unwindTo(0)
}

func (t *teardown) emit(e Event) {
	if t.trace != nil {
		t.trace(e)
	}
}
