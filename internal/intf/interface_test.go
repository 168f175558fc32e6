package intf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vlc/internal/bank"
	"vlc/internal/core"
	"vlc/internal/playlist"
	"vlc/internal/settings"
	"vlc/internal/testsupport"
)

func newRoot(t *testing.T, opts ...testsupport.ConfigOption) (*core.Context, *testsupport.LogBuffer) {
	t.Helper()
	root, logs := testsupport.NewRoot(t, testsupport.NewConfig(t, opts...))
	root.Playlist = playlist.New()
	root.Modules = bank.New[core.InterfaceFactory]("interface module")
	root.AudioOutputs = bank.New[core.OutputFactory]("audio output")
	root.VideoOutputs = bank.New[core.OutputFactory]("video output")
	root.Modules.Init()
	root.AudioOutputs.Init()
	root.VideoOutputs.Init()
	if err := Register(root.Modules); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := RegisterOutputs(root.AudioOutputs, root.VideoOutputs); err != nil {
		t.Fatalf("RegisterOutputs returned error: %v", err)
	}
	return root, logs
}

func runUntilStopped(t *testing.T, iface *Interface, ctx context.Context) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- iface.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	iface.RequestStop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("interface did not observe the stop flag")
	}
}

func TestModuleSelection(t *testing.T) {
	tests := []struct {
		name   string
		config string
		store  string
		want   string
	}{
		{"fallback", "", "", DefaultModule},
		{"config", "tui", "", "tui"},
		{"store wins", "tui", "dummy", "dummy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := newRoot(t, testsupport.WithInterfaceModule(tt.config))
			if tt.store != "" {
				_ = root.Settings.Set(settings.KeyInterface, tt.store)
			}
			if got := ModuleName(root); got != tt.want {
				t.Fatalf("ModuleName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateUnknownModule(t *testing.T) {
	root, _ := newRoot(t)
	_ = root.Settings.Set(settings.KeyInterface, "gnome")
	if _, err := Create(root); !errors.Is(err, bank.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := Create(core.New(nil, nil, nil)); err == nil {
		t.Fatal("expected error without module bank")
	}
}

func TestDummyStopsOnFlag(t *testing.T) {
	root, logs := newRoot(t)
	_ = root.Playlist.Append("udp://@:1234")
	iface, err := Create(root)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	runUntilStopped(t, iface, context.Background())
	if !iface.StopRequested() {
		t.Fatal("expected stop flag to remain raised")
	}
	if err := iface.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := iface.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if err := iface.Run(context.Background()); err == nil {
		t.Fatal("expected Run after Close to fail")
	}
	out := logs.String()
	if !strings.Contains(out, "udp://@:1234") {
		t.Fatalf("expected playlist item in logs, got %q", out)
	}
	if !strings.Contains(out, "null audio") || !strings.Contains(out, "null video") {
		t.Fatalf("expected outputs to open, got %q", out)
	}
}

func TestDummyStopsOnContext(t *testing.T) {
	root, _ := newRoot(t)
	iface, err := Create(root)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	defer iface.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := iface.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestStopRequestedBeforeRun(t *testing.T) {
	root, _ := newRoot(t)
	iface, err := Create(root)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	defer iface.Close()
	iface.RequestStop()
	if err := iface.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestConcurrentStopRequests(t *testing.T) {
	root, _ := newRoot(t)
	iface, err := Create(root)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	defer iface.Close()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			iface.RequestStop()
		}()
	}
	wg.Wait()
	if !iface.StopRequested() {
		t.Fatal("expected stop flag to be raised")
	}
}

func TestMissingOutputIsSoft(t *testing.T) {
	root, logs := newRoot(t)
	root.VideoEnabled = false
	_ = root.Settings.Set(settings.KeyAudioOutput, "esd")
	iface, err := Create(root)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	defer iface.Close()
	iface.RequestStop()
	if err := iface.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "output unavailable") || !strings.Contains(out, "esd") {
		t.Fatalf("expected output warning, got %q", out)
	}
	if strings.Contains(out, "null video") {
		t.Fatal("disabled video must not open an output")
	}
}

func TestTUIStopsOnFlag(t *testing.T) {
	root, _ := newRoot(t)
	_ = root.Playlist.Append("movie.mpg")
	var screen bytes.Buffer
	module := &tui{root: root, logger: root.Logger, poll: 5 * time.Millisecond, input: strings.NewReader(""), output: &screen}
	iface := &Interface{name: "tui", module: module, logger: root.Logger}
	runUntilStopped(t, iface, context.Background())
	if err := iface.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestTUIModel(t *testing.T) {
	stop := &Interface{}
	m := newTUIModel(stop, time.Millisecond, []string{"a.mpg"})
	if !strings.Contains(m.View(), "1. a.mpg") {
		t.Fatalf("unexpected view %q", m.View())
	}

	next, cmd := m.Update(stopCheckMsg(time.Now()))
	if cmd == nil || next.(tuiModel).quitting {
		t.Fatal("expected another stop check while the flag is down")
	}

	stop.RequestStop()
	next, cmd = m.Update(stopCheckMsg(time.Now()))
	if !next.(tuiModel).quitting || cmd == nil {
		t.Fatal("expected quit once the flag is raised")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(tuiModel).quitting {
		t.Fatal("expected q to quit")
	}
	if next.View() != "" {
		t.Fatal("expected empty view after quitting")
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "clip.mpg")
	if err := os.WriteFile(plain, []byte("not a tagged file"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if got := describe(plain); got != "clip.mpg" {
		t.Fatalf("describe(untagged) = %q", got)
	}
	if got := describe("dvd:/dev/dvd"); got != "dvd:/dev/dvd" {
		t.Fatalf("describe(remote) = %q", got)
	}
	if got := describe(dir); got != dir {
		t.Fatalf("describe(dir) = %q", got)
	}
}
