// Package main hosts the vlc entrypoint.
//
// The Cobra root command hands the raw argument vector to the lifecycle
// orchestrator, which owns the option grammar, and turns the run status into
// the process exit code.
package main
