// Package core provides the foundational domain types and interfaces used by
// AgentSim. It defines the core abstractions for:
//
//   - Actions (opaque tagged event values flowing through a simulation)
//   - Agents (named entities with private internal state and an action handler)
//   - Context (the scoped view each agent receives per processed action)
//   - ExitContext / ExitFunc (the caller-supplied run-completion protocol)
//   - Records (the processed-action history exposed by the engine)
//
// The package intentionally keeps implementation concerns (queueing, drain
// loop orchestration, state serialization) out of scope; those live in the
// simulation package. Global and per-agent state values are deliberately
// untyped (any) so callers can supply application state of arbitrary shape.
package core
