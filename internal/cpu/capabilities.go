// Package cpu detects the host processor capabilities once at startup.
//
// Detection is an ordered probe chain: every probe is only attempted when the
// previous one succeeded, because the probing mechanism itself may not be
// available otherwise. The resulting bitmask is stored in the root context and
// read by any subsystem that wants a feature-specific code path.
package cpu

import "strings"

// Capabilities is a bitmask of detected hardware features.
type Capabilities uint32

const (
	Cap486 Capabilities = 1 << iota
	Cap586
	CapMMX
	CapMMXEXT
	CapSSE
	Cap3DNow
	CapSSE2
	CapAVX
	CapAVX2
	CapAltiVec
	CapNEON
)

// None is the empty capability set.
const None Capabilities = 0

var capabilityNames = []struct {
	flag Capabilities
	name string
}{
	{Cap486, "486"},
	{Cap586, "586"},
	{CapMMX, "mmx"},
	{CapMMXEXT, "mmxext"},
	{CapSSE, "sse"},
	{Cap3DNow, "3dnow"},
	{CapSSE2, "sse2"},
	{CapAVX, "avx"},
	{CapAVX2, "avx2"},
	{CapAltiVec, "altivec"},
	{CapNEON, "neon"},
}

// Has reports whether every flag in want is present.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

// String renders the set as a "|" separated list, or "none".
func (c Capabilities) String() string {
	if c == None {
		return "none"
	}
	names := make([]string, 0, len(capabilityNames))
	for _, entry := range capabilityNames {
		if c&entry.flag != 0 {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}
