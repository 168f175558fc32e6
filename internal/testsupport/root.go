package testsupport

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"vlc/internal/config"
	"vlc/internal/core"
	"vlc/internal/settings"
)

// LogBuffer is a goroutine-safe buffer for capturing diagnostics.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewRoot builds a root context over cfg whose diagnostics are captured in
// the returned buffer at debug level. The store is seeded from cfg.Settings.
func NewRoot(t testing.TB, cfg *config.Config) (*core.Context, *LogBuffer) {
	t.Helper()

	if cfg == nil {
		cfg = NewConfig(t)
	}
	store := settings.New()
	if err := store.ImportMap(cfg.Settings); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	logs := &LogBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return core.New(cfg, store, logger), logs
}
