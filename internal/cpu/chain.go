package cpu

// Probe tests one capability tier. ok reports whether the tier is present;
// granted carries the flags the probe established.
type Probe func() (granted Capabilities, ok bool)

// Step is a named probe in a chain.
type Step struct {
	Name  string
	Probe Probe
}

// Chain is an ordered list of probes where a failure at step k forecloses
// steps k+1..n.
type Chain []Step

// Report describes one chain execution.
type Report struct {
	Capabilities Capabilities
	// Passed lists the steps that succeeded, in order.
	Passed []string
	// FailedStep names the step that ended the chain, or "" when every step passed.
	FailedStep string
}

// Run executes the chain and returns the accumulated flags.
func (c Chain) Run() Capabilities {
	return c.RunReport().Capabilities
}

// RunReport executes the chain and records which steps ran.
func (c Chain) RunReport() Report {
	var report Report
	for _, step := range c {
		granted, ok := step.Probe()
		if !ok {
			report.FailedStep = step.Name
			return report
		}
		report.Capabilities |= granted
		report.Passed = append(report.Passed, step.Name)
	}
	return report
}
