// Package config loads, normalizes, and validates the vlc configuration file.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the VLC_CONFIG environment
// override. The file only carries process-level knobs (log routing, runtime
// directories, the default interface module, channel server coordinates) and
// the free-form [settings] table that seeds the configuration store before
// the environment and the command line are applied.
//
// Always obtain file-backed settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors.
package config
