package bank

import (
	"errors"
	"slices"
	"testing"
)

type factory func() string

func TestRegisterAndLookup(t *testing.T) {
	b := New[factory]("audio output")
	b.Init()
	if err := b.Register("null", func() string { return "null" }); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := b.Register("alsa", func() string { return "alsa" }); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	got, err := b.Lookup("null")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got() != "null" {
		t.Fatalf("unexpected factory result %q", got())
	}
	if names := b.Names(); !slices.Equal(names, []string{"alsa", "null"}) {
		t.Fatalf("Names() = %v", names)
	}
}

func TestLookupMissing(t *testing.T) {
	b := New[factory]("video output")
	b.Init()
	_, err := b.Lookup("x11")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterRequiresInit(t *testing.T) {
	b := New[factory]("module")
	if err := b.Register("dummy", nil); err == nil {
		t.Fatal("expected error before Init")
	}
	b.Init()
	if err := b.Register("", nil); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestEndDropsEntries(t *testing.T) {
	b := New[factory]("module")
	b.Init()
	_ = b.Register("dummy", func() string { return "" })
	b.End()
	if _, err := b.Lookup("dummy"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after End, got %v", err)
	}
	if len(b.Names()) != 0 {
		t.Fatal("expected no names after End")
	}
}
