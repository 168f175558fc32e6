package intf

import (
	"context"
	"log/slog"
	"time"

	"vlc/internal/core"
	"vlc/internal/logging"
)

// dummy announces the playlist and then idles until told to stop.
type dummy struct {
	root    *core.Context
	logger  *slog.Logger
	poll    time.Duration
	outputs []core.Output
}

func newDummy(root *core.Context) (core.InterfaceModule, error) {
	return &dummy{
		root:   root,
		logger: logging.NewComponentLogger(root.Logger, "intf.dummy"),
		poll:   pollInterval(root),
	}, nil
}

func (d *dummy) Run(ctx context.Context, stop core.StopFlag) error {
	d.outputs = openOutputs(d.root, d.logger)
	if d.root.Playlist != nil {
		for i, spec := range d.root.Playlist.Items() {
			d.logger.Info("playlist item", logging.Int("index", i), logging.String("item", describe(spec)))
		}
	}

	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()
	for !stop.StopRequested() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	d.logger.Debug("stop flag observed")
	return nil
}

func (d *dummy) Close() error {
	outputs := d.outputs
	d.outputs = nil
	return closeOutputs(outputs)
}
