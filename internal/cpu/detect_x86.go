//go:build (386 || amd64) && gc

package cpu

import syscpu "golang.org/x/sys/cpu"

// cpuid is implemented in cpuid_x86.s.
func cpuid(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

type nativeHost struct{}

// The Go runtime refuses to start on x86 processors without the
// identification instruction, so it is always available here.
func (nativeHost) IdentificationAvailable() bool { return true }

func (nativeHost) Leaf(leaf uint32) Registers {
	eax, ebx, ecx, edx := cpuid(leaf, 0)
	return Registers{EAX: eax, EBX: ebx, ECX: ecx, EDX: edx}
}

// HostReport runs the host probe chain and reports which steps executed.
func HostReport() Report {
	return ProbeX86(nativeHost{}, VectorFeatures{
		SSE2: syscpu.X86.HasSSE2,
		AVX:  syscpu.X86.HasAVX,
		AVX2: syscpu.X86.HasAVX2,
	})
}

// Detect returns the host capability set. It never fails.
func Detect() Capabilities {
	return HostReport().Capabilities
}
