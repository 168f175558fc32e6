package intf

import (
	"errors"
	"log/slog"

	"vlc/internal/bank"
	"vlc/internal/core"
	"vlc/internal/logging"
	"vlc/internal/settings"
)

// NullOutput is the default audio and video output name.
const NullOutput = "null"

type nullOutput struct {
	kind string
}

func (o nullOutput) Name() string { return NullOutput + " " + o.kind }

func (nullOutput) Close() error { return nil }

// RegisterOutputs adds the null output to the audio and video output banks.
func RegisterOutputs(audio, video *bank.Bank[core.OutputFactory]) error {
	if err := audio.Register(NullOutput, func(*core.Context) (core.Output, error) {
		return nullOutput{kind: "audio"}, nil
	}); err != nil {
		return err
	}
	return video.Register(NullOutput, func(*core.Context) (core.Output, error) {
		return nullOutput{kind: "video"}, nil
	})
}

// openOutputs resolves the audio and video outputs selected in the store.
// A failed lookup disables that output for the run without failing it.
func openOutputs(root *core.Context, logger *slog.Logger) []core.Output {
	var opened []core.Output
	open := func(enabled bool, kind, key string, outputs *bank.Bank[core.OutputFactory]) {
		if !enabled || outputs == nil {
			return
		}
		name := root.Settings.String(key, NullOutput)
		factory, err := outputs.Lookup(name)
		if err == nil {
			var out core.Output
			out, err = factory(root)
			if err == nil {
				logger.Debug("output opened", logging.String("kind", kind), logging.String("output", out.Name()))
				opened = append(opened, out)
				return
			}
		}
		logging.WarnWithContext(logger, "output unavailable", "output_unavailable",
			logging.String("kind", kind),
			logging.String("output", name),
			logging.Error(err),
			logging.String(logging.FieldImpact, kind+" disabled for this run"),
			logging.String(logging.FieldErrorHint, "check --"+key+" against the registered outputs"),
		)
	}
	open(root.AudioEnabled, "audio", settings.KeyAudioOutput, root.AudioOutputs)
	open(root.VideoEnabled, "video", settings.KeyVideoOutput, root.VideoOutputs)
	return opened
}

func closeOutputs(outputs []core.Output) error {
	var errs []error
	for i := len(outputs) - 1; i >= 0; i-- {
		errs = append(errs, outputs[i].Close())
	}
	return errors.Join(errs...)
}
