package settings

// Store keys written by the option parser and read by subsystems.
const (
	KeyInterface    = "intf"
	KeyInitScript   = "intf_init_script"
	KeyChannelsFile = "channels_file"
	KeyPollMS       = "intf_poll_ms"

	KeyAudioOutput = "aout"
	KeyAudioDSP    = "aout_dsp"
	KeyStereo      = "aout_stereo"
	KeySPDIF       = "aout_spdif"
	KeyAudioRate   = "aout_rate"

	KeyVideoOutput = "vout"
	KeyDisplay     = "display"
	KeyWidth       = "width"
	KeyHeight      = "height"
	KeyFramebuffer = "vout_fb_dev"
	KeyGrayscale   = "grayscale"
	KeyFullscreen  = "fullscreen"
	KeyOverlay     = "overlay"
	KeyMotion      = "motion"
	KeyIDCT        = "idct"
	KeyYUV         = "yuv"
	KeySynchro     = "synchro"

	KeyDVDDevice   = "dvd_device"
	KeyDVDTitle    = "dvd_title"
	KeyDVDChapter  = "dvd_chapter"
	KeyDVDAngle    = "dvd_angle"
	KeyDVDAudio    = "dvd_audio"
	KeyDVDChannel  = "dvd_channel"
	KeyDVDSubtitle = "dvd_subtitle"

	KeyInput         = "input"
	KeyServer        = "server"
	KeyPort          = "port"
	KeyNetInterface  = "iface"
	KeyBroadcast     = "broadcast"
	KeyChannelServer = "channel_server"
	KeyChannelPort   = "channel_port"
)

// KeyInfo documents one store key for long help output.
type KeyInfo struct {
	Key     string
	Section string
	Value   string
	Help    string
}

var knownKeys = []KeyInfo{
	{KeyInterface, "Interface", "<method name>", "interface method"},
	{KeyInitScript, "Interface", "<filename>", "initialization script"},
	{KeyChannelsFile, "Interface", "<filename>", "channels list"},
	{KeyPollMS, "Interface", "<ms>", "stop flag poll interval"},

	{KeyAudioOutput, "Audio", "<method name>", "audio method"},
	{KeyAudioDSP, "Audio", "<filename>", "dsp device path"},
	{KeyStereo, "Audio", "{1|0}", "stereo or mono output"},
	{KeySPDIF, "Audio", "{1|0}", "AC3 pass-through mode"},
	{KeyAudioRate, "Audio", "<rate>", "output rate"},

	{KeyVideoOutput, "Video", "<method name>", "display method"},
	{KeyDisplay, "Video", "<display name>", "display used"},
	{KeyWidth, "Video", "<width>", "display width"},
	{KeyHeight, "Video", "<height>", "display height"},
	{KeyFramebuffer, "Video", "<filename>", "framebuffer device path"},
	{KeyGrayscale, "Video", "{1|0}", "grayscale or color output"},
	{KeyFullscreen, "Video", "{1|0}", "fullscreen"},
	{KeyOverlay, "Video", "{1|0}", "overlay"},
	{KeyMotion, "Video", "<method name>", "motion compensation method"},
	{KeyIDCT, "Video", "<method name>", "IDCT method"},
	{KeyYUV, "Video", "<method name>", "YUV method"},
	{KeySynchro, "Video", "{I|I+|IP|IP+|IPB}", "synchro algorithm"},

	{KeyDVDDevice, "DVD", "<device>", "DVD device"},
	{KeyDVDTitle, "DVD", "<title>", "title number"},
	{KeyDVDChapter, "DVD", "<chapter>", "chapter number"},
	{KeyDVDAngle, "DVD", "<angle>", "angle number"},
	{KeyDVDAudio, "DVD", "{1|2|3|255}", "audio type (mpeg, ac3, lpcm, off)"},
	{KeyDVDChannel, "DVD", "[0-15]", "audio channel"},
	{KeyDVDSubtitle, "DVD", "[0-31]", "subtitle channel"},

	{KeyInput, "Input", "<method name>", "input method"},
	{KeyServer, "Input", "<hostname>", "video server"},
	{KeyPort, "Input", "<port>", "video server port"},
	{KeyNetInterface, "Input", "<interface>", "network interface"},
	{KeyBroadcast, "Input", "<addr>", "broadcast mode"},
	{KeyChannelServer, "Input", "<hostname>", "channel server"},
	{KeyChannelPort, "Input", "<port>", "channel server port"},
}

// KnownKeys lists every documented key in display order.
func KnownKeys() []KeyInfo {
	out := make([]KeyInfo, len(knownKeys))
	copy(out, knownKeys)
	return out
}

// IsKnown reports whether key is documented.
func IsKnown(key string) bool {
	key = normalizeKey(key)
	for _, info := range knownKeys {
		if info.Key == key {
			return true
		}
	}
	return false
}
