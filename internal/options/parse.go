package options

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"vlc/internal/settings"
)

// ExitRequest names a terminal option that ends the run before any
// subsystem starts.
type ExitRequest int

const (
	ExitNone ExitRequest = iota
	ExitHelp
	ExitLongHelp
	ExitVersion
)

func (e ExitRequest) String() string {
	switch e {
	case ExitHelp:
		return "help"
	case ExitLongHelp:
		return "longhelp"
	case ExitVersion:
		return "version"
	default:
		return "none"
	}
}

// DefaultArgv0 is used when the argument list is empty.
const DefaultArgv0 = "vlc"

// Result holds the root flags derived from the command line.
type Result struct {
	Argv0           string
	AudioEnabled    bool
	VideoEnabled    bool
	ChannelsEnabled bool
	WarningLevel    int
	Exit            ExitRequest
	Remaining       []string
	Deprecated      []string
}

var errTerminal = errors.New("terminal option")

// Parse applies args to store and returns the resulting root flags. args[0]
// is the invocation name. Parsing stops at the first terminal option; the
// returned Result then carries the request in Exit. Unknown or malformed
// options yield a *BadOption.
func Parse(args []string, store *settings.Store) (Result, error) {
	result := Result{
		Argv0:        DefaultArgv0,
		AudioEnabled: true,
		VideoEnabled: true,
	}
	if len(args) == 0 {
		return result, nil
	}
	if base := filepath.Base(args[0]); args[0] != "" && base != "." && base != string(filepath.Separator) {
		result.Argv0 = base
	}
	rest, err := resolveLongNames(stripProcessSerial(args[1:]))
	if err != nil {
		return result, err
	}

	flags := newFlagSet(result.Argv0)
	err = flags.ParseAll(rest, func(flag *pflag.Flag, value string) error {
		opt, ok := lookupOption(flag.Name)
		if !ok {
			return fmt.Errorf("unhandled option --%s", flag.Name)
		}
		return apply(opt, value, store, &result)
	})
	switch {
	case errors.Is(err, errTerminal):
		return result, nil
	case errors.Is(err, settings.ErrFrozen):
		return result, fmt.Errorf("apply options: %w", err)
	case err != nil:
		return result, newBadOption(flags, rest, err)
	}

	result.Remaining = append([]string(nil), flags.Args()...)
	if result.WarningLevel < 0 {
		result.WarningLevel = 0
	}
	return result, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false
	for _, opt := range table {
		flags.StringP(opt.Long, opt.Short, "", opt.Usage)
		if !opt.TakesValue() {
			flags.Lookup(opt.Long).NoOptDefVal = "true"
		}
	}
	return flags
}

func apply(opt Option, value string, store *settings.Store, result *Result) error {
	switch opt.action {
	case actionHelp:
		result.Exit = ExitHelp
		return errTerminal
	case actionLongHelp:
		result.Exit = ExitLongHelp
		return errTerminal
	case actionVersion:
		result.Exit = ExitVersion
		return errTerminal
	case actionVerbose:
		result.WarningLevel++
	case actionWarning:
		result.WarningLevel = max(Atoi(value), 0)
		result.Deprecated = append(result.Deprecated, "--warning is deprecated, use -v instead")
	case actionNoAudio:
		result.AudioEnabled = false
	case actionNoVideo:
		result.VideoEnabled = false
	case actionChannels:
		result.ChannelsEnabled = true
	case actionSetConst:
		return store.Set(opt.key, opt.fixed)
	case actionSetValue:
		return store.Set(opt.key, value)
	case actionSetNumeric:
		return store.SetInt(opt.key, Atoi(value))
	case actionAudioType:
		return store.SetInt(opt.key, AudioType(value))
	}
	return nil
}

// AudioType maps a textual audio track type to its code. Unrecognized
// tokens select AudioNone.
func AudioType(token string) int {
	switch token {
	case "ac3":
		return AudioAC3
	case "lpcm":
		return AudioLPCM
	case "mpeg":
		return AudioMPEG
	default:
		return AudioNone
	}
}

// Atoi parses the leading decimal integer of value. Values without one, or
// out of range, yield 0 so a malformed number reads as unset.
func Atoi(value string) int {
	value = strings.TrimLeft(value, " \t\n\v\f\r")
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	parsed, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return parsed
}

// stripProcessSerial drops the process serial number token some desktop
// launchers insert as the first argument.
func stripProcessSerial(args []string) []string {
	if len(args) > 0 && strings.HasPrefix(args[0], "-psn") {
		return args[1:]
	}
	return args
}
