// Package options parses the command line into root flags and
// configuration store writes. Options are applied strictly in command-line
// order; the grammar follows GNU getopt_long through spf13/pflag, including
// unambiguous long-name abbreviations.
package options

import "vlc/internal/settings"

type action int

const (
	actionSetValue action = iota
	actionSetNumeric
	actionSetConst
	actionAudioType
	actionVerbose
	actionWarning
	actionNoAudio
	actionNoVideo
	actionChannels
	actionHelp
	actionLongHelp
	actionVersion
)

// Option describes one entry of the option grammar.
type Option struct {
	Long    string
	Short   string
	Value   string
	Usage   string
	Section string

	action action
	key    string
	fixed  string
}

// TakesValue reports whether the option consumes an argument.
func (o Option) TakesValue() bool {
	switch o.action {
	case actionSetValue, actionSetNumeric, actionAudioType, actionWarning:
		return true
	}
	return false
}

func (o Option) terminal() bool {
	switch o.action {
	case actionHelp, actionLongHelp, actionVersion:
		return true
	}
	return false
}

// Deprecated reports whether the option is kept only for compatibility.
func (o Option) Deprecated() bool {
	return o.action == actionWarning
}

// Audio track type codes written under settings.KeyDVDAudio.
const (
	AudioMPEG = 1
	AudioAC3  = 2
	AudioLPCM = 3
	AudioNone = 255
)

var table = []Option{
	{Long: "help", Short: "h", Usage: "print help and exit", Section: "General", action: actionHelp},
	{Long: "longhelp", Short: "H", Usage: "print long help and exit", Section: "General", action: actionLongHelp},
	{Long: "version", Usage: "output version information and exit", Section: "General", action: actionVersion},
	{Long: "verbose", Short: "v", Usage: "increase verbosity, repeatable", Section: "General", action: actionVerbose},
	{Long: "warning", Value: "<level>", Usage: "set warning level (deprecated, use -v)", Section: "General", action: actionWarning},

	{Long: "intf", Short: "I", Value: "<module>", Usage: "interface method", Section: "Interface", action: actionSetValue, key: settings.KeyInterface},
	{Long: "channels", Usage: "enable channels", Section: "Interface", action: actionChannels},

	{Long: "noaudio", Usage: "disable audio", Section: "Audio", action: actionNoAudio},
	{Long: "aout", Short: "A", Value: "<module>", Usage: "audio output method", Section: "Audio", action: actionSetValue, key: settings.KeyAudioOutput},
	{Long: "stereo", Usage: "stereo audio output", Section: "Audio", action: actionSetConst, key: settings.KeyStereo, fixed: "1"},
	{Long: "mono", Usage: "mono audio output", Section: "Audio", action: actionSetConst, key: settings.KeyStereo, fixed: "0"},
	{Long: "spdif", Usage: "AC3 pass-through mode", Section: "Audio", action: actionSetConst, key: settings.KeySPDIF, fixed: "1"},

	{Long: "novideo", Usage: "disable video", Section: "Video", action: actionNoVideo},
	{Long: "vout", Short: "V", Value: "<module>", Usage: "video output method", Section: "Video", action: actionSetValue, key: settings.KeyVideoOutput},
	{Long: "display", Value: "<display>", Usage: "display string", Section: "Video", action: actionSetValue, key: settings.KeyDisplay},
	{Long: "width", Value: "<w>", Usage: "display width", Section: "Video", action: actionSetValue, key: settings.KeyWidth},
	{Long: "height", Value: "<h>", Usage: "display height", Section: "Video", action: actionSetValue, key: settings.KeyHeight},
	{Long: "grayscale", Short: "g", Usage: "grayscale output", Section: "Video", action: actionSetConst, key: settings.KeyGrayscale, fixed: "1"},
	{Long: "color", Usage: "color output", Section: "Video", action: actionSetConst, key: settings.KeyGrayscale, fixed: "0"},
	{Long: "fullscreen", Usage: "fullscreen output", Section: "Video", action: actionSetConst, key: settings.KeyFullscreen, fixed: "1"},
	{Long: "overlay", Usage: "accelerated display", Section: "Video", action: actionSetConst, key: settings.KeyOverlay, fixed: "1"},
	{Long: "motion", Value: "<module>", Usage: "motion compensation method", Section: "Video", action: actionSetValue, key: settings.KeyMotion},
	{Long: "idct", Value: "<module>", Usage: "IDCT method", Section: "Video", action: actionSetValue, key: settings.KeyIDCT},
	{Long: "yuv", Value: "<module>", Usage: "YUV method", Section: "Video", action: actionSetValue, key: settings.KeyYUV},
	{Long: "synchro", Value: "<type>", Usage: "force synchro algorithm", Section: "Video", action: actionSetValue, key: settings.KeySynchro},

	{Long: "dvdtitle", Short: "t", Value: "<num>", Usage: "choose DVD title", Section: "DVD", action: actionSetNumeric, key: settings.KeyDVDTitle},
	{Long: "dvdchapter", Short: "T", Value: "<num>", Usage: "choose DVD chapter", Section: "DVD", action: actionSetNumeric, key: settings.KeyDVDChapter},
	{Long: "dvdangle", Short: "u", Value: "<num>", Usage: "choose DVD angle", Section: "DVD", action: actionSetNumeric, key: settings.KeyDVDAngle},
	{Long: "dvdaudio", Short: "a", Value: "<type>", Usage: "choose DVD audio type (ac3, lpcm, mpeg, off)", Section: "DVD", action: actionAudioType, key: settings.KeyDVDAudio},
	{Long: "dvdchannel", Short: "c", Value: "<channel>", Usage: "choose DVD audio channel", Section: "DVD", action: actionSetNumeric, key: settings.KeyDVDChannel},
	{Long: "dvdsubtitle", Short: "s", Value: "<channel>", Usage: "choose DVD subtitle channel", Section: "DVD", action: actionSetNumeric, key: settings.KeyDVDSubtitle},

	{Long: "input", Value: "<method>", Usage: "input method", Section: "Input", action: actionSetValue, key: settings.KeyInput},
	{Long: "server", Value: "<host>", Usage: "video server address", Section: "Input", action: actionSetValue, key: settings.KeyServer},
	{Long: "port", Value: "<port>", Usage: "video server port", Section: "Input", action: actionSetValue, key: settings.KeyPort},
	{Long: "broadcast", Value: "<addr>", Usage: "listen to a broadcast", Section: "Input", action: actionSetValue, key: settings.KeyBroadcast},
}

// Table returns the option grammar in display order.
func Table() []Option {
	out := make([]Option, len(table))
	copy(out, table)
	return out
}

func lookupOption(long string) (Option, bool) {
	for _, opt := range table {
		if opt.Long == long {
			return opt, true
		}
	}
	return Option{}, false
}

func lookupShort(short string) (Option, bool) {
	for _, opt := range table {
		if opt.Short != "" && opt.Short == short {
			return opt, true
		}
	}
	return Option{}, false
}
