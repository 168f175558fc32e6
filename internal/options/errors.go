package options

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/pflag"
)

const suggestionDistance = 2

// BadOption reports an unknown or malformed command-line option.
type BadOption struct {
	Token      string
	Suggestion string
	Err        error
}

func (e *BadOption) Error() string {
	var b strings.Builder
	if e.Token != "" {
		fmt.Fprintf(&b, "invalid option %q", e.Token)
	} else {
		b.WriteString("invalid option")
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean --%s?)", e.Suggestion)
	}
	return b.String()
}

func (e *BadOption) Unwrap() error {
	return e.Err
}

func newBadOption(flags *pflag.FlagSet, args []string, err error) *BadOption {
	bad := &BadOption{Err: err}
	token, name := offendingToken(flags, args)
	bad.Token = token
	if name != "" {
		bad.Suggestion = Suggest(name)
	}
	return bad
}

// offendingToken returns the first argument naming an unknown option, or the
// last option token when every name is known and the failure was a missing
// value. name is set for unknown long options.
func offendingToken(flags *pflag.FlagSet, args []string) (token, name string) {
	var last string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		last = arg
		if strings.HasPrefix(arg, "--") {
			long, _, hasValue := strings.Cut(arg[2:], "=")
			flag := flags.Lookup(long)
			if flag == nil {
				return arg, long
			}
			if !hasValue && flag.NoOptDefVal == "" {
				i++
			}
			continue
		}
		for j := 1; j < len(arg); j++ {
			flag := flags.ShorthandLookup(arg[j : j+1])
			if flag == nil {
				return arg, ""
			}
			if flag.NoOptDefVal == "" {
				if j == len(arg)-1 {
					i++
				}
				break
			}
		}
	}
	return last, ""
}

// Suggest returns the known long option closest to name, or "" when none is
// near enough.
func Suggest(name string) string {
	best, bestDistance := "", suggestionDistance+1
	for _, opt := range table {
		if d := levenshtein.ComputeDistance(name, opt.Long); d < bestDistance {
			best, bestDistance = opt.Long, d
		}
	}
	return best
}
