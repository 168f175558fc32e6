//go:build !((386 || amd64) && gc)

package cpu

import "runtime"

// HostReport reports the fixed platform mask.
func HostReport() Report {
	return Report{Capabilities: FixedMask(runtime.GOARCH), Passed: []string{"fixed-mask"}}
}

// Detect returns the host capability set. It never fails.
func Detect() Capabilities {
	return HostReport().Capabilities
}
