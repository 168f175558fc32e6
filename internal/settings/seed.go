package settings

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// EnvPrefix prefixes environment variables that seed store keys.
const EnvPrefix = "VLC_"

// EnvConfig names the config file path and never seeds a key.
const EnvConfig = EnvPrefix + "CONFIG"

// EnvName returns the environment variable that seeds key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(normalizeKey(key))
}

// ImportMap writes every entry of values, in key order.
func (s *Store) ImportMap(values map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := s.Set(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// ImportEnviron seeds known keys from KEY=VALUE environment entries named
// VLC_<KEY>. Unknown VLC_ variables are ignored and returned so the caller
// can report them.
func (s *Store) ImportEnviron(env []string) ([]string, error) {
	var ignored []string
	for _, entry := range env {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) || name == EnvConfig {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if !IsKnown(key) {
			ignored = append(ignored, name)
			continue
		}
		if err := s.Set(key, value); err != nil {
			return ignored, fmt.Errorf("import %s: %w", name, err)
		}
	}
	return ignored, nil
}
