package cpu

// Registers holds the output of one identification leaf.
type Registers struct {
	EAX, EBX, ECX, EDX uint32
}

// Host exposes the x86 identification mechanism.
type Host interface {
	// IdentificationAvailable reports whether the identification instruction
	// can be executed at all.
	IdentificationAvailable() bool
	// Leaf executes the identification instruction for leaf. It must only be
	// called once IdentificationAvailable returned true.
	Leaf(leaf uint32) Registers
}

const (
	leafVendor        = 0x00000000
	leafFeatures      = 0x00000001
	leafExtendedLevel = 0x80000000
	leafExtendedFlags = 0x80000001

	edxMMX      = 1 << 23
	edxSSE      = 1 << 25
	edxAMDMMXEx = 1 << 22
	edx3DNow    = 1 << 31

	// "AuthenticAMD" split across EBX, EDX, ECX.
	amdEBX = 0x68747541
	amdEDX = 0x69746e65
	amdECX = 0x444d4163
)

// X86Chain builds the identification probe chain for host.
func X86Chain(host Host) Chain {
	var amd bool
	return Chain{
		{Name: "identification", Probe: func() (Capabilities, bool) {
			return Cap486, host.IdentificationAvailable()
		}},
		{Name: "standard-level", Probe: func() (Capabilities, bool) {
			r := host.Leaf(leafVendor)
			if r.EAX == 0 {
				return None, false
			}
			amd = r.EBX == amdEBX && r.ECX == amdECX && r.EDX == amdEDX
			return Cap586, true
		}},
		{Name: "mmx", Probe: func() (Capabilities, bool) {
			r := host.Leaf(leafFeatures)
			if r.EDX&edxMMX == 0 {
				return None, false
			}
			caps := CapMMX
			if r.EDX&edxSSE != 0 {
				caps |= CapMMXEXT | CapSSE
			}
			return caps, true
		}},
		{Name: "extended-level", Probe: func() (Capabilities, bool) {
			r := host.Leaf(leafExtendedLevel)
			return None, r.EAX >= leafExtendedFlags
		}},
		{Name: "extended-flags", Probe: func() (Capabilities, bool) {
			r := host.Leaf(leafExtendedFlags)
			var caps Capabilities
			if r.EDX&edx3DNow != 0 {
				caps |= Cap3DNow
			}
			if amd && r.EDX&edxAMDMMXEx != 0 {
				caps |= CapMMXEXT
			}
			return caps, true
		}},
	}
}

// VectorFeatures reports OS-supported vector extensions.
type VectorFeatures struct {
	SSE2 bool
	AVX  bool
	AVX2 bool
}

// VectorChain builds the vector tier. It is only meaningful once the
// identification chain established CapSSE.
func VectorChain(f VectorFeatures) Chain {
	return Chain{
		{Name: "sse2", Probe: func() (Capabilities, bool) { return CapSSE2, f.SSE2 }},
		{Name: "avx", Probe: func() (Capabilities, bool) { return CapAVX, f.AVX }},
		{Name: "avx2", Probe: func() (Capabilities, bool) { return CapAVX2, f.AVX2 }},
	}
}

// ProbeX86 runs the identification chain and, when SSE is present, the
// vector tier.
func ProbeX86(host Host, vector VectorFeatures) Report {
	report := X86Chain(host).RunReport()
	if !report.Capabilities.Has(CapSSE) {
		return report
	}
	tier := VectorChain(vector).RunReport()
	report.Capabilities |= tier.Capabilities
	report.Passed = append(report.Passed, tier.Passed...)
	if report.FailedStep == "" {
		report.FailedStep = tier.FailedStep
	}
	return report
}
