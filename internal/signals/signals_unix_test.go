//go:build unix

package signals

import (
	"syscall"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"vlc/internal/testsupport"
)

func TestHangupStopsInterface(t *testing.T) {
	root, _ := testsupport.NewRoot(t, nil)
	target := &stopCounter{}
	_ = root.SetInterface(target)

	c := New(root.Logger)
	if err := c.Install(root); err != nil {
		t.Fatalf("Install returned error: %v", err)
	}
	defer c.Uninstall()

	if err := syscall.Kill(syscall.Getpid(), unix.SIGHUP); err != nil {
		t.Fatalf("send SIGHUP: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for target.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("SIGHUP did not reach the interface")
		}
		time.Sleep(time.Millisecond)
	}

	if err := syscall.Kill(syscall.Getpid(), unix.SIGHUP); err != nil {
		t.Fatalf("send second SIGHUP: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if got := target.calls.Load(); got != 1 {
		t.Fatalf("stop requests = %d, want 1", got)
	}
}

func TestSignalNames(t *testing.T) {
	if got := signalName(unix.SIGALRM); got != "SIGALRM" {
		t.Fatalf("signalName(SIGALRM) = %q", got)
	}
	for _, sig := range FatalSignals() {
		if sig == unix.SIGTERM {
			t.Fatal("SIGTERM must not be intercepted")
		}
	}
}
