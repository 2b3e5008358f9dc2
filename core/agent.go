package core

import "context"

// Handler processes one dispatched action on behalf of an agent.
//
// The engine invokes the handler once per processed action with a freshly
// built Context scoped to this agent. Handlers for the same action run
// concurrently with the handlers of all other registered agents; a handler
// may therefore block (e.g. on model or network I/O) without delaying its
// siblings. The ctx carries cancellation from the Dispatch call that started
// the current drain.
//
// A non-nil error fails the Dispatch call that drove this processing step.
// Sibling handlers already in flight still run to completion; their effects
// are kept.
type Handler func(ctx context.Context, action Action, turn Context) error

// Agent is an immutable agent definition: a unique id, the action handler
// invoked for every dispatched action, and an optional initial internal
// state. Definitions are supplied to the simulation at construction time and
// are never added or removed afterwards; the id is the sole identity key.
type Agent struct {
	id           string
	handler      Handler
	initialState any
	hasState     bool
}

// NewAgent creates an agent definition without initial internal state.
func NewAgent(id string, handler Handler) Agent {
	return Agent{id: id, handler: handler}
}

// NewAgentWithState creates an agent definition whose internal state is
// seeded with initialState. A nil initialState is still "state present";
// use NewAgent for agents that carry no internal state at all.
func NewAgentWithState(id string, handler Handler, initialState any) Agent {
	return Agent{id: id, handler: handler, initialState: initialState, hasState: true}
}

// ID returns the unique agent identifier.
func (a Agent) ID() string { return a.id }

// Handler returns the action handler.
func (a Agent) Handler() Handler { return a.handler }

// InitialState returns the seed internal state and whether one was supplied.
func (a Agent) InitialState() (any, bool) { return a.initialState, a.hasState }
