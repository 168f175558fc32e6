//go:build unix

package signals

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// FatalSignals returns the signals that stop the running interface. SIGTERM
// keeps its default disposition.
func FatalSignals() []os.Signal {
	return []os.Signal{unix.SIGINT, unix.SIGHUP, unix.SIGQUIT}
}

// TransientSignals returns the signals that are logged and ignored.
func TransientSignals() []os.Signal {
	return []os.Signal{unix.SIGALRM, unix.SIGPIPE}
}

func signalName(sig os.Signal) string {
	if s, ok := sig.(syscall.Signal); ok {
		if name := unix.SignalName(s); name != "" {
			return name
		}
	}
	return sig.String()
}
