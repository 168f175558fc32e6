// Package channels implements the optional channel networking subsystem:
// a channel list, a local ownership lock and join requests sent to the
// channel server.
package channels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"vlc/internal/core"
	"vlc/internal/logging"
	"vlc/internal/settings"
)

// CommonChannel is the channel every client returns to when it stops
// watching a specific one.
const CommonChannel = 0

const dialTimeout = 2 * time.Second

// ErrLocked reports that another process owns the local channel lock.
var ErrLocked = errors.New("channel lock held by another process")

// Channel is one entry of the channel list.
type Channel struct {
	Number int
	Name   string
}

// Network is a live channel networking subsystem.
type Network struct {
	logger   *slog.Logger
	lock     *flock.Flock
	server   string
	runID    string
	list     []Channel
	mu       sync.Mutex
	current  int
	closed   bool
	dialFunc func(network, address string, timeout time.Duration) (net.Conn, error)
}

// New creates the channel networking subsystem for root. The channel list
// file is optional; lock contention and list errors are returned so the
// caller can degrade.
func New(root *core.Context) (*Network, error) {
	if root == nil || root.Config == nil {
		return nil, errors.New("create channel network: missing configuration")
	}
	cfg := root.Config
	store := root.Settings

	host := store.String(settings.KeyChannelServer, cfg.Channels.Server)
	port := store.Int(settings.KeyChannelPort, cfg.Channels.Port)
	if strings.TrimSpace(host) == "" {
		return nil, errors.New("create channel network: no channel server configured")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("create channel network: invalid channel port %d", port)
	}

	var list []Channel
	if path := store.String(settings.KeyChannelsFile, cfg.Channels.ListFile); path != "" {
		loaded, err := LoadList(path)
		if err != nil {
			return nil, fmt.Errorf("create channel network: %w", err)
		}
		list = loaded
	}

	lockPath := cfg.ChannelLockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create channel lock directory: %w", err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire channel lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire channel lock %s: %w", lockPath, ErrLocked)
	}

	n := &Network{
		logger:   logging.NewComponentLogger(root.Logger, "channels"),
		lock:     lock,
		server:   net.JoinHostPort(host, strconv.Itoa(port)),
		runID:    root.RunID,
		list:     list,
		current:  CommonChannel,
		dialFunc: net.DialTimeout,
	}
	n.logger.Debug("channel network ready",
		logging.String("server", n.server),
		logging.Int("channels", len(list)),
		logging.String("lock", lockPath),
	)
	return n, nil
}

// Channels returns the loaded channel list.
func (n *Network) Channels() []Channel {
	return append([]Channel(nil), n.list...)
}

// Current returns the last joined channel.
func (n *Network) Current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Join asks the channel server to switch this client to channel.
func (n *Network) Join(channel int) error {
	if channel < 0 {
		return fmt.Errorf("join channel %d: negative channel", channel)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return errors.New("join channel: network closed")
	}

	conn, err := n.dialFunc("udp", n.server, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial channel server: %w", err)
	}
	defer conn.Close()
	if err := conn.SetWriteDeadline(time.Now().Add(dialTimeout)); err != nil {
		return fmt.Errorf("set channel write deadline: %w", err)
	}
	if _, err := io.WriteString(conn, joinRequest(channel, n.runID)); err != nil {
		return fmt.Errorf("send join request: %w", err)
	}
	n.current = channel
	n.logger.Info("joined channel", logging.Int("channel", channel), logging.String("server", n.server))
	return nil
}

// Close releases the channel lock. Calling Close more than once is a no-op.
func (n *Network) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	if err := n.lock.Unlock(); err != nil {
		return fmt.Errorf("release channel lock: %w", err)
	}
	return nil
}

func joinRequest(channel int, runID string) string {
	return fmt.Sprintf("JOIN %d %s %d\n", channel, runID, time.Now().Unix())
}

// LoadList reads a channel list: one "<number> <name>" entry per line,
// blank lines and lines starting with '#' ignored.
func LoadList(path string) ([]Channel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open channel list: %w", err)
	}
	defer file.Close()
	return parseList(file)
}

func parseList(r io.Reader) ([]Channel, error) {
	var list []Channel
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		numberField, name, _ := strings.Cut(text, " ")
		number, err := strconv.Atoi(numberField)
		if err != nil || number < 0 {
			return nil, fmt.Errorf("channel list line %d: invalid channel number %q", line, numberField)
		}
		list = append(list, Channel{Number: number, Name: strings.TrimSpace(name)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read channel list: %w", err)
	}
	return list, nil
}
