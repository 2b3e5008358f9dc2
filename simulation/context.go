package simulation

import (
	"context"

	"github.com/hupe1980/agentsim/core"
)

// turnContext implements core.Context for one (agent, action) pair. A fresh
// instance is built per handler invocation; only the peer snapshot is stored
// on the context itself, everything else reads or mutates live engine state
// through the simulation mutex.
type turnContext struct {
	sim     *Simulation
	agentID string
	peers   []core.AgentSnapshot
}

var _ core.Context = (*turnContext)(nil)

// AgentID returns the id of the agent this context belongs to.
func (t *turnContext) AgentID() string { return t.agentID }

// GlobalState reads the live shared state value.
func (t *turnContext) GlobalState() any {
	return t.sim.GlobalState()
}

// InternalState reads this agent's live internal state.
func (t *turnContext) InternalState() (any, bool) {
	t.sim.mu.Lock()
	defer t.sim.mu.Unlock()

	rt := t.sim.index[t.agentID]
	if !rt.hasState {
		return nil, false
	}

	return rt.state, true
}

// Peers returns a copy of the pre-action snapshot shared by every agent
// processing the current action.
func (t *turnContext) Peers() []core.AgentSnapshot {
	peers := make([]core.AgentSnapshot, len(t.peers))
	copy(peers, t.peers)

	return peers
}

// Dispatch enqueues a follow-up action. It delegates to the simulation's
// public entry point, so the check-and-start-if-idle decision applies here
// too: called mid-drain it appends and returns nil, called from a deferred
// continuation after the drain finished it restarts the loop.
func (t *turnContext) Dispatch(ctx context.Context, action core.Action) error {
	return t.sim.Dispatch(ctx, action)
}

// UpdateGlobalState replaces the shared state with transform(current). The
// read-transform-store sequence is atomic relative to all other state
// updates.
func (t *turnContext) UpdateGlobalState(transform func(current any) any) {
	t.sim.mu.Lock()
	defer t.sim.mu.Unlock()

	t.sim.globalState = transform(t.sim.globalState)
}

// UpdateInternalState replaces this agent's internal state with
// transform(current). The transform sees nil when no state is present;
// afterwards the state counts as present.
func (t *turnContext) UpdateInternalState(transform func(current any) any) {
	t.sim.mu.Lock()
	defer t.sim.mu.Unlock()

	rt := t.sim.index[t.agentID]
	rt.state = transform(rt.state)
	rt.hasState = true
}
