package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"vlc/internal/bank"
	"vlc/internal/channels"
	"vlc/internal/config"
	"vlc/internal/core"
	"vlc/internal/logging"
	"vlc/internal/options"
	"vlc/internal/settings"
	"vlc/internal/usage"
)

// Exit statuses returned by Run besides the errno of a fatal host error.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitBadOption = int(syscall.EINVAL)
)

// Options configures a run.
type Options struct {
	// Args is the full argument vector, invocation name first.
	Args []string
	// Environ seeds the configuration store and locates the config file.
	Environ []string
	Stdout  io.Writer
	Stderr  io.Writer
	// Config skips config file loading when set.
	Config     *config.Config
	Subsystems Subsystems
	// Trace observes transitions and resource acquisition and release.
	Trace func(Event)
}

type runner struct {
	opts   Options
	subs   Subsystems
	stack  *teardown
	logger *slog.Logger
	root   *core.Context
	state  State
}

// Run executes one run and returns the process exit status.
func Run(ctx context.Context, opts Options) int {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	r := &runner{
		opts:   opts,
		subs:   opts.Subsystems.withDefaults(),
		stack:  &teardown{trace: opts.Trace},
		logger: logging.NewNop(),
	}
	status := r.run(ctx)
	if err := r.stack.unwind(); err != nil {
		fmt.Fprintf(r.opts.Stderr, "vlc: teardown: %v\n", err)
	}
	r.transition(Done)
	return status
}

func (r *runner) transition(next State) {
	r.state = next
	if r.opts.Trace != nil {
		r.opts.Trace(Event{Kind: EventTransition, State: next})
	}
	r.logger.Debug("lifecycle transition", logging.String(logging.FieldState, next.String()))
}

func (r *runner) run(ctx context.Context) int {
	r.transition(Cold)
	cfg, cfgErr := r.loadConfig()

	// Cold -> MessagingReady
	sink, err := r.subs.Sink(logging.Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		Writer:   r.opts.Stderr,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(r.opts.Stderr, "vlc: %v\n", err)
		return errnoStatus(err)
	}
	r.logger = sink.Logger()
	r.stack.push("sink", func() error {
		r.logger.Info("program terminated")
		return sink.Close()
	})
	r.transition(MessagingReady)
	r.logger.Info(usage.Copyright)
	if cfgErr != nil {
		logging.WarnWithContext(r.logger, "configuration file unusable, using defaults", "config_load_failed",
			logging.Error(cfgErr),
			logging.String(logging.FieldErrorHint, "fix the file named by "+config.EnvConfigPath),
		)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		logging.WarnWithContext(r.logger, "runtime directories unavailable", "directories_unavailable", logging.Error(err))
	}

	// MessagingReady -> Configured
	store := settings.New()
	parsed, status, ok := r.configure(store, cfg)
	if !ok {
		return status
	}
	sink.SetVerbosity(parsed.WarningLevel)
	store.Freeze()

	root := core.New(cfg, store, nil)
	root.Logger = r.logger.With(logging.String(logging.FieldRunID, root.RunID))
	r.logger = root.Logger
	root.Argv0 = parsed.Argv0
	root.AudioEnabled = parsed.AudioEnabled
	root.VideoEnabled = parsed.VideoEnabled
	root.ChannelsEnabled = parsed.ChannelsEnabled
	root.WarningLevel = parsed.WarningLevel
	root.Capabilities = r.subs.Probe()
	r.root = root
	r.transition(Configured)
	for _, notice := range parsed.Deprecated {
		logging.WarnWithContext(r.logger, notice, "deprecated_option",
			logging.String(logging.FieldImpact, "option will be removed"),
			logging.String(logging.FieldErrorHint, "use -v"),
		)
	}
	r.logger.Debug("host capabilities", logging.String("cpu", root.Capabilities.String()))

	if err := r.subs.HostInit(root); err != nil {
		r.logger.Error("host initialization failed", logging.Error(err))
		return errnoStatus(err)
	}
	r.stack.push("host", func() error {
		r.subs.HostEnd(root)
		return nil
	})

	// Configured -> PlaylistReady
	list, err := r.subs.Playlist()
	if err != nil {
		logging.ErrorWithContext(r.logger, "unable to create playlist", "playlist_create_failed", logging.Error(err))
		return errnoStatus(err)
	}
	root.Playlist = list
	r.stack.push("playlist", list.Close)
	for _, spec := range parsed.Remaining {
		if err := list.Append(spec); err != nil {
			logging.WarnWithContext(r.logger, "input skipped", "playlist_append_failed",
				logging.String("input", spec),
				logging.Error(err),
			)
		}
	}
	r.transition(PlaylistReady)

	// PlaylistReady -> BanksReady
	root.Modules = bank.New[core.InterfaceFactory]("interface module")
	root.AudioOutputs = bank.New[core.OutputFactory]("audio output")
	root.VideoOutputs = bank.New[core.OutputFactory]("video output")
	for _, b := range []interface {
		Init()
		End()
		Kind() string
	}{root.Modules, root.AudioOutputs, root.VideoOutputs} {
		b.Init()
		r.stack.push(b.Kind()+" bank", func() error {
			b.End()
			return nil
		})
	}
	if err := r.subs.RegisterBuiltins(root); err != nil {
		logging.WarnWithContext(r.logger, "built-in modules unavailable", "module_register_failed", logging.Error(err))
	}
	r.transition(BanksReady)

	// BanksReady -> NetworkingAttempted
	var network Network
	if root.ChannelsEnabled {
		network, err = r.subs.Channels(root)
		if err != nil {
			logging.WarnWithContext(r.logger, "channels unavailable, disabling them", "channels_unavailable",
				logging.Error(err),
				logging.String(logging.FieldImpact, "channel switching disabled for this run"),
				logging.String(logging.FieldErrorHint, "check the channel server and lock file"),
			)
			root.DisableChannels()
			network = nil
		} else {
			r.stack.push("channels", network.Close)
		}
	}
	r.transition(NetworkingAttempted)

	// NetworkingAttempted -> InterfaceRunning | Draining
	mark := r.stack.depth()
	if iface, err := r.subs.Interface(root); err != nil {
		logging.WarnWithContext(r.logger, "interface unavailable, skipping run", "interface_create_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "nothing is played"),
			logging.String(logging.FieldErrorHint, "check --intf against the registered interface modules"),
		)
	} else {
		r.runInterface(ctx, root, iface)
	}

	// InterfaceRunning -> Draining
	r.transition(Draining)
	if err := r.stack.unwindTo(mark); err != nil {
		r.logger.Warn("interface teardown failed", logging.Error(err))
	}
	if root.ChannelsEnabled && network != nil {
		if err := network.Join(channels.CommonChannel); err != nil {
			logging.WarnWithContext(r.logger, "unable to rejoin the common channel", "channel_join_failed",
				logging.Error(err),
				logging.Int("channel", channels.CommonChannel),
			)
		}
	}
	return ExitOK
}

func (r *runner) runInterface(ctx context.Context, root *core.Context, iface Interface) {
	r.stack.push("interface", iface.Close)
	if err := root.SetInterface(iface); err != nil {
		r.logger.Error("publish interface handle", logging.Error(err))
		return
	}
	r.stack.push("interface handle", root.ClearInterface)

	controller := r.subs.Signals(r.logger)
	if err := controller.Install(root); err != nil {
		logging.WarnWithContext(r.logger, "signal handlers unavailable", "signals_install_failed", logging.Error(err))
	} else {
		r.stack.push("signal handlers", func() error {
			controller.Uninstall()
			return nil
		})
	}

	r.transition(InterfaceRunning)
	stopBridge := context.AfterFunc(ctx, iface.RequestStop)
	defer stopBridge()
	if err := iface.Run(ctx); err != nil {
		logging.ErrorWithContext(r.logger, "interface stopped with an error", "interface_run_failed", logging.Error(err))
	}
}

// configure loads the store and parses the command line. ok is false when
// the run must end with status.
func (r *runner) configure(store *settings.Store, cfg *config.Config) (options.Result, int, bool) {
	if err := store.ImportMap(cfg.Settings); err != nil {
		r.logger.Error("seed settings from config", logging.Error(err))
		return options.Result{}, ExitFailure, false
	}
	ignored, err := store.ImportEnviron(r.opts.Environ)
	if err != nil {
		r.logger.Error("seed settings from environment", logging.Error(err))
		return options.Result{}, ExitFailure, false
	}
	for _, name := range ignored {
		r.logger.Debug("ignoring unknown environment setting", logging.String("variable", name))
	}

	parsed, err := options.Parse(r.opts.Args, store)
	var bad *options.BadOption
	switch {
	case errors.As(err, &bad):
		attrs := []logging.Attr{logging.String("option", bad.Token), logging.Error(bad.Err)}
		if bad.Suggestion != "" {
			attrs = append(attrs, logging.String(logging.FieldErrorHint, "did you mean --"+bad.Suggestion+"?"))
		}
		logging.ErrorWithContext(r.logger, "invalid command-line option", "bad_option", attrs...)
		_ = usage.Write(r.opts.Stderr, usage.Short, parsed.Argv0)
		return parsed, ExitBadOption, false
	case err != nil:
		r.logger.Error("apply command-line options", logging.Error(err))
		return parsed, ExitFailure, false
	}

	switch parsed.Exit {
	case options.ExitHelp, options.ExitLongHelp:
		_ = usage.Write(r.opts.Stdout, usage.KindFor(parsed.Exit), parsed.Argv0)
		return parsed, ExitOK, false
	case options.ExitVersion:
		_ = usage.Version(r.opts.Stdout)
		return parsed, ExitOK, false
	}
	return parsed, ExitOK, true
}

func (r *runner) loadConfig() (*config.Config, error) {
	if r.opts.Config != nil {
		return r.opts.Config, nil
	}
	cfg, _, _, err := config.LoadFromEnv(r.opts.Environ)
	if err != nil {
		return config.Fallback(), err
	}
	return cfg, nil
}

// errnoStatus returns the host error number carried by err, or ExitFailure.
func errnoStatus(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return ExitFailure
}
