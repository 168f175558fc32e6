package options

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	errNoArgument = errors.New("option does not take an argument")
	errAmbiguous  = errors.New("option is ambiguous")
)

// resolveLongNames rewrites unambiguous long-option abbreviations to their
// full names and rejects values attached to options that take none. Unknown
// names are left for the grammar to report. Scanning ends at "--" and at the
// first terminal option, since parsing never looks past either.
func resolveLongNames(args []string) ([]string, error) {
	out := slices.Clone(args)
	for i := 0; i < len(out); i++ {
		arg := out[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		if arg[1] != '-' {
			skipNext, stop, err := scanShortCluster(arg)
			if err != nil {
				return nil, &BadOption{Token: arg, Err: err}
			}
			if stop {
				break
			}
			if skipNext {
				i++
			}
			continue
		}

		name, value, hasValue := strings.Cut(arg[2:], "=")
		opt, ok, err := resolveLong(name)
		if err != nil {
			return nil, &BadOption{Token: arg, Err: err}
		}
		if !ok {
			continue
		}
		if hasValue && !opt.TakesValue() {
			return nil, &BadOption{Token: arg, Err: fmt.Errorf("--%s: %w", opt.Long, errNoArgument)}
		}
		if opt.Long != name {
			out[i] = "--" + opt.Long
			if hasValue {
				out[i] += "=" + value
			}
		}
		if opt.terminal() {
			break
		}
		if opt.TakesValue() && !hasValue {
			i++
		}
	}
	return out, nil
}

// resolveLong finds the option named by name or by a unique prefix of its
// long name.
func resolveLong(name string) (Option, bool, error) {
	if name == "" {
		return Option{}, false, nil
	}
	if opt, ok := lookupOption(name); ok {
		return opt, true, nil
	}
	var matches []Option
	for _, opt := range table {
		if strings.HasPrefix(opt.Long, name) {
			matches = append(matches, opt)
		}
	}
	switch len(matches) {
	case 0:
		return Option{}, false, nil
	case 1:
		return matches[0], true, nil
	}
	names := make([]string, len(matches))
	for i, opt := range matches {
		names[i] = "--" + opt.Long
	}
	return Option{}, false, fmt.Errorf("%w: --%s could be %s", errAmbiguous, name, strings.Join(names, ", "))
}

// scanShortCluster walks a cluster of short options. skipNext reports that
// the last option consumes the following argument; stop reports a terminal
// option.
func scanShortCluster(arg string) (skipNext, stop bool, err error) {
	for j := 1; j < len(arg); j++ {
		opt, ok := lookupShort(arg[j : j+1])
		if !ok {
			return false, false, nil
		}
		if opt.terminal() {
			return false, true, nil
		}
		if opt.TakesValue() {
			return j == len(arg)-1, false, nil
		}
		if j+1 < len(arg) && arg[j+1] == '=' {
			return false, false, fmt.Errorf("-%s: %w", opt.Short, errNoArgument)
		}
	}
	return false, false, nil
}
