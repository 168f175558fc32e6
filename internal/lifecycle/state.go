// Package lifecycle drives one run of the process: diagnostic sink, option
// parsing, playlist, registries, optional channel networking and the
// interface, then teardown of everything acquired in reverse order.
package lifecycle

// State is a step of the run state machine.
type State int

const (
	Cold State = iota
	MessagingReady
	Configured
	PlaylistReady
	BanksReady
	NetworkingAttempted
	InterfaceRunning
	Draining
	Done
)

func (s State) String() string {
	switch s {
	case Cold:
		return "cold"
	case MessagingReady:
		return "messaging_ready"
	case Configured:
		return "configured"
	case PlaylistReady:
		return "playlist_ready"
	case BanksReady:
		return "banks_ready"
	case NetworkingAttempted:
		return "networking_attempted"
	case InterfaceRunning:
		return "interface_running"
	case Draining:
		return "draining"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// EventKind classifies a trace event.
type EventKind int

const (
	EventTransition EventKind = iota
	EventAcquire
	EventRelease
)

// Event is reported to Options.Trace as the run progresses.
type Event struct {
	Kind     EventKind
	State    State
	Resource string
}
