package cpu

// FixedMask returns the capability set assumed for hosts without a generic
// probing mechanism.
func FixedMask(goarch string) Capabilities {
	switch goarch {
	case "ppc64", "ppc64le":
		return CapAltiVec
	case "arm64":
		return CapNEON
	default:
		return None
	}
}
