// Package logging provides a minimal logging interface and adapters for AgentSim.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the simulation engine and agents use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - AgentSimLogger with contextual helpers (run, agent, component) and
//     domain specific helpers for action processing and model calls
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	sim, err := simulation.New(func(o *simulation.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
