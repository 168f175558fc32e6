package playlist

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestAppendKeepsOrder(t *testing.T) {
	p := New()
	for _, spec := range []string{"a.mpg", "b.vob", "ts://server:1234"} {
		if err := p.Append(spec); err != nil {
			t.Fatalf("Append(%q) returned error: %v", spec, err)
		}
	}
	if got, want := p.Items(), []string{"a.mpg", "b.vob", "ts://server:1234"}; !slices.Equal(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
}

func TestInsertPositions(t *testing.T) {
	p := New()
	_ = p.Append("b")
	if err := p.Insert(0, "a"); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := p.Insert(2, "c"); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := p.Insert(5, "z"); err == nil {
		t.Fatal("expected out of range error")
	}
	if err := p.Insert(0, ""); err == nil {
		t.Fatal("expected empty spec error")
	}
	if got := p.Items(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected items %v", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := New()
	_ = p.Append("a")
	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if p.Len() != 0 {
		t.Fatal("expected closed playlist to be empty")
	}
	if err := p.Append("b"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestConcurrentReaders(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = p.Len()
				_ = p.Items()
			}
		}()
		_ = p.Append(string(rune('a' + i)))
	}
	wg.Wait()
	if p.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", p.Len())
	}
}
