package settings

import (
	"errors"
	"slices"
	"testing"
)

func TestStoreLastWriteWins(t *testing.T) {
	store := New()
	if err := store.Set("width", "640"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Set("WIDTH", "800"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := store.String(KeyWidth, ""); got != "800" {
		t.Fatalf("expected last write to win, got %q", got)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one entry, got %d", store.Len())
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	if err := New().Set("  ", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestStoreFreeze(t *testing.T) {
	store := New()
	if err := store.SetInt(KeyHeight, 600); err != nil {
		t.Fatalf("SetInt returned error: %v", err)
	}
	store.Freeze()
	if !store.Frozen() {
		t.Fatal("expected store to report frozen")
	}
	err := store.Set(KeyHeight, "480")
	if !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if got := store.Int(KeyHeight, 0); got != 600 {
		t.Fatalf("expected frozen value 600, got %d", got)
	}
}

func TestStoreInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"decimal", "800", 800},
		{"negative", "-3", -3},
		{"plus sign", "+7", 7},
		{"hex", "0x1F", 31},
		{"octal", "010", 8},
		{"zero", "0", 0},
		{"trailing garbage", "12abc", -1},
		{"empty", "", -1},
		{"sign only", "-", -1},
		{"word", "auto", -1},
		{"bad octal", "09", -1},
		{"underscore", "1_000", -1},
		{"bare hex prefix", "0x", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			if err := store.Set(KeyPort, tt.value); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			if got := store.Int(KeyPort, -1); got != tt.want {
				t.Fatalf("Int(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestStoreDefaults(t *testing.T) {
	store := New()
	if got := store.String(KeyInterface, "dummy"); got != "dummy" {
		t.Fatalf("expected default string, got %q", got)
	}
	if got := store.Int(KeyPort, 1234); got != 1234 {
		t.Fatalf("expected default int, got %d", got)
	}
	if !store.Bool(KeyStereo, true) {
		t.Fatal("expected default bool true")
	}
	_ = store.Set(KeyStereo, "0")
	if store.Bool(KeyStereo, true) {
		t.Fatal("expected stored 0 to read false")
	}
}

func TestStoreKeysAndSnapshot(t *testing.T) {
	store := New()
	_ = store.Set(KeyWidth, "800")
	_ = store.Set(KeyAudioOutput, "null")
	_ = store.Set(KeyHeight, "600")

	if got, want := store.Keys(), []string{"aout", "height", "width"}; !slices.Equal(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	snap := store.Snapshot()
	snap["width"] = "1"
	if store.String(KeyWidth, "") != "800" {
		t.Fatal("snapshot must not alias the store")
	}
}

func TestImportEnviron(t *testing.T) {
	store := New()
	ignored, err := store.ImportEnviron([]string{
		"HOME=/home/user",
		"VLC_WIDTH=1024",
		"VLC_CONFIG=/tmp/vlc.toml",
		"VLC_BOGUS=1",
		"VLC_INTF=tui",
		"MALFORMED",
	})
	if err != nil {
		t.Fatalf("ImportEnviron returned error: %v", err)
	}
	if !slices.Equal(ignored, []string{"VLC_BOGUS"}) {
		t.Fatalf("unexpected ignored list %v", ignored)
	}
	if got := store.Snapshot(); len(got) != 2 || got["width"] != "1024" || got["intf"] != "tui" {
		t.Fatalf("unexpected store contents %v", got)
	}
}

func TestImportPrecedence(t *testing.T) {
	store := New()
	if err := store.ImportMap(map[string]string{"width": "320", "height": "240"}); err != nil {
		t.Fatalf("ImportMap returned error: %v", err)
	}
	if _, err := store.ImportEnviron([]string{"VLC_WIDTH=640"}); err != nil {
		t.Fatalf("ImportEnviron returned error: %v", err)
	}
	_ = store.Set(KeyWidth, "800")

	if store.String(KeyWidth, "") != "800" || store.String(KeyHeight, "") != "240" {
		t.Fatalf("unexpected precedence result %v", store.Snapshot())
	}
}

func TestImportAfterFreeze(t *testing.T) {
	store := New()
	store.Freeze()
	if err := store.ImportMap(map[string]string{"width": "1"}); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen from ImportMap, got %v", err)
	}
	if _, err := store.ImportEnviron([]string{"VLC_WIDTH=1"}); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen from ImportEnviron, got %v", err)
	}
}

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()
	seen := make(map[string]bool, len(keys))
	for _, info := range keys {
		if seen[info.Key] {
			t.Fatalf("duplicate key %q", info.Key)
		}
		seen[info.Key] = true
		if info.Help == "" || info.Section == "" {
			t.Fatalf("key %q missing description", info.Key)
		}
	}
	if !IsKnown("Width") || IsKnown("frobnicate") {
		t.Fatal("IsKnown returned unexpected result")
	}
	if EnvName(KeyDVDTitle) != "VLC_DVD_TITLE" {
		t.Fatalf("unexpected env name %q", EnvName(KeyDVDTitle))
	}
}
