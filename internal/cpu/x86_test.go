package cpu

import (
	"reflect"
	"testing"
)

type fakeHost struct {
	available bool
	leaves    map[uint32]Registers
	queried   []uint32
}

func (h *fakeHost) IdentificationAvailable() bool { return h.available }

func (h *fakeHost) Leaf(leaf uint32) Registers {
	h.queried = append(h.queried, leaf)
	return h.leaves[leaf]
}

func amdVendor() Registers {
	return Registers{EAX: 1, EBX: amdEBX, ECX: amdECX, EDX: amdEDX}
}

func TestX86ChainPrefixes(t *testing.T) {
	tests := []struct {
		name        string
		host        *fakeHost
		want        Capabilities
		wantQueried []uint32
	}{
		{
			name: "no identification",
			host: &fakeHost{},
			want: None,
		},
		{
			name:        "level zero",
			host:        &fakeHost{available: true, leaves: map[uint32]Registers{}},
			want:        Cap486,
			wantQueried: []uint32{leafVendor},
		},
		{
			name: "no mmx",
			host: &fakeHost{available: true, leaves: map[uint32]Registers{
				leafVendor:        {EAX: 1},
				leafFeatures:      {EDX: edxSSE},
				leafExtendedLevel: {EAX: leafExtendedFlags},
				leafExtendedFlags: {EDX: edx3DNow},
			}},
			want:        Cap486 | Cap586,
			wantQueried: []uint32{leafVendor, leafFeatures},
		},
		{
			name: "mmx without extended leaves",
			host: &fakeHost{available: true, leaves: map[uint32]Registers{
				leafVendor:        {EAX: 1},
				leafFeatures:      {EDX: edxMMX},
				leafExtendedFlags: {EDX: edx3DNow},
			}},
			want:        Cap486 | Cap586 | CapMMX,
			wantQueried: []uint32{leafVendor, leafFeatures, leafExtendedLevel},
		},
		{
			name: "generic vendor ignores amd bit",
			host: &fakeHost{available: true, leaves: map[uint32]Registers{
				leafVendor:        {EAX: 1, EBX: 0x756e6547},
				leafFeatures:      {EDX: edxMMX},
				leafExtendedLevel: {EAX: leafExtendedFlags},
				leafExtendedFlags: {EDX: edx3DNow | edxAMDMMXEx},
			}},
			want:        Cap486 | Cap586 | CapMMX | Cap3DNow,
			wantQueried: []uint32{leafVendor, leafFeatures, leafExtendedLevel, leafExtendedFlags},
		},
		{
			name: "amd extended mmx",
			host: &fakeHost{available: true, leaves: map[uint32]Registers{
				leafVendor:        amdVendor(),
				leafFeatures:      {EDX: edxMMX},
				leafExtendedLevel: {EAX: 0x80000008},
				leafExtendedFlags: {EDX: edxAMDMMXEx},
			}},
			want:        Cap486 | Cap586 | CapMMX | CapMMXEXT,
			wantQueried: []uint32{leafVendor, leafFeatures, leafExtendedLevel, leafExtendedFlags},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := X86Chain(tc.host).Run()
			if got != tc.want {
				t.Fatalf("capabilities %v, want %v", got, tc.want)
			}
			if !reflect.DeepEqual(tc.host.queried, tc.wantQueried) {
				t.Fatalf("queried leaves %#x, want %#x", tc.host.queried, tc.wantQueried)
			}
		})
	}
}

func TestProbeX86VectorTierRequiresSSE(t *testing.T) {
	withoutSSE := &fakeHost{available: true, leaves: map[uint32]Registers{
		leafVendor:   {EAX: 1},
		leafFeatures: {EDX: edxMMX},
	}}
	report := ProbeX86(withoutSSE, VectorFeatures{SSE2: true, AVX: true, AVX2: true})
	if report.Capabilities.Has(CapSSE2) {
		t.Fatalf("vector tier must not run without SSE: %v", report.Capabilities)
	}

	withSSE := &fakeHost{available: true, leaves: map[uint32]Registers{
		leafVendor:        {EAX: 1},
		leafFeatures:      {EDX: edxMMX | edxSSE},
		leafExtendedLevel: {EAX: leafExtendedFlags},
	}}
	report = ProbeX86(withSSE, VectorFeatures{SSE2: true, AVX: false, AVX2: true})
	want := Cap486 | Cap586 | CapMMX | CapMMXEXT | CapSSE | CapSSE2
	if report.Capabilities != want {
		t.Fatalf("capabilities %v, want %v", report.Capabilities, want)
	}
	if report.FailedStep != "avx" {
		t.Fatalf("expected avx to end the vector tier, got %q", report.FailedStep)
	}
	wantPassed := []string{"identification", "standard-level", "mmx", "extended-level", "extended-flags", "sse2"}
	if !reflect.DeepEqual(report.Passed, wantPassed) {
		t.Fatalf("passed %v, want %v", report.Passed, wantPassed)
	}
}
