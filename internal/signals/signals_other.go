//go:build !unix

package signals

import "os"

// FatalSignals returns the signals that stop the running interface.
func FatalSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// TransientSignals returns the signals that are logged and ignored.
func TransientSignals() []os.Signal {
	return nil
}

func signalName(sig os.Signal) string {
	return sig.String()
}
