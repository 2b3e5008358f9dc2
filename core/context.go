package core

import "context"

// AgentSnapshot is a read-only view of one registered agent captured at the
// start of an action's processing. State is nil when the agent carries no
// internal state; HasState distinguishes that from an actual nil state value.
type AgentSnapshot struct {
	ID       string
	State    any
	HasState bool
}

// Context is the scoped view an agent handler receives for one processed
// action. Contexts are ephemeral: the engine builds a fresh one per
// (agent, action) pair and never reuses or caches them.
//
// Freshness contract:
//   - GlobalState and InternalState read the live engine value at call time.
//     Updates the handler itself performed earlier in the same invocation are
//     therefore visible on subsequent reads, and sequential Update* calls
//     compose. Mutations by concurrently running sibling handlers may also
//     become visible between two reads.
//   - Peers is frozen before any handler for the current action starts: every
//     agent processing the same action observes the identical peer snapshot,
//     regardless of mutations happening during processing.
//
// Update* calls are serialized by the engine; "read current value, apply
// transform, store result" is atomic per call even under concurrent handlers.
// Transforms must be pure: they run inside the engine's critical section and
// must not call back into the Context or the simulation.
type Context interface {
	// AgentID returns the id of the agent this context was built for.
	AgentID() string

	// GlobalState returns the current shared state value.
	GlobalState() any

	// InternalState returns this agent's own internal state and whether one
	// is present.
	InternalState() (any, bool)

	// Peers returns the pre-action snapshot of all registered agents in
	// registration order, including this agent itself.
	Peers() []AgentSnapshot

	// Dispatch enqueues an action. Called from within a handler it appends to
	// the in-flight drain and returns nil immediately; called from a deferred
	// continuation (e.g. a timer goroutine firing after the original drain
	// finished) it restarts the drain loop and blocks until that drain stops,
	// returning any processing error.
	Dispatch(ctx context.Context, action Action) error

	// UpdateGlobalState replaces the shared state with transform(current).
	UpdateGlobalState(transform func(current any) any)

	// UpdateInternalState replaces this agent's internal state with
	// transform(current). The transform receives nil when no state is
	// present; after the call state is considered present.
	UpdateInternalState(transform func(current any) any)
}
