// Package agentsim provides a high-level façade over the simulation engine
// enabling rapid construction of event-driven multi-agent simulations. Most
// applications interact with this package by:
//  1. Defining agents via NewAgent / NewAgentWithState
//  2. Creating a simulation via New() with an initial global state and an
//     exit predicate
//  3. Dispatching actions and awaiting completion via Wait
//
// The façade delegates coordination to simulation.Simulation while keeping
// setup and usage ergonomics concise: the common types are re-exported so a
// single import suffices for typical consumers. All defaults are safe for
// local development and testing; production deployments typically supply a
// structured logger.
package agentsim

import (
	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
	"github.com/hupe1980/agentsim/simulation"
)

// Re-exported core types so consumers only need this package for the common
// construction path.
type (
	// Action is the opaque tagged event value flowing through a simulation.
	Action = core.Action
	// Agent is an immutable agent definition.
	Agent = core.Agent
	// Handler processes one dispatched action on behalf of an agent.
	Handler = core.Handler
	// Context is the per-(agent, action) view handed to a handler.
	Context = core.Context
	// AgentSnapshot is a read-only view of one agent's state.
	AgentSnapshot = core.AgentSnapshot
	// ExitContext is the state handed to the exit predicate.
	ExitContext = core.ExitContext
	// ExitFunc decides whether a simulation run is complete.
	ExitFunc = core.ExitFunc
	// Record captures one fully processed action.
	Record = core.Record
	// Simulation is the event-driven coordination engine.
	Simulation = simulation.Simulation
)

// Options configures the simulation created by New.
type Options struct {
	// HistoryLimit bounds the processed-action history (0 keeps everything).
	HistoryLimit int

	// Logger receives structured engine diagnostics (defaults to NoOp).
	Logger logging.Logger
}

// New creates a simulation from an initial global state, an ordered agent
// list and the required exit predicate.
func New(initialGlobalState any, agents []core.Agent, shouldExit core.ExitFunc, optFns ...func(o *Options)) (*Simulation, error) {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return simulation.New(func(o *simulation.Options) {
		o.InitialGlobalState = initialGlobalState
		o.Agents = agents
		o.ShouldExit = shouldExit
		o.HistoryLimit = opts.HistoryLimit
		o.Logger = opts.Logger
	})
}

// NewAction constructs an action with the given type tag and payload.
func NewAction(actionType string, payload any) Action {
	return core.NewAction(actionType, payload)
}

// NewAgent creates an agent definition without initial internal state.
func NewAgent(id string, handler Handler) Agent {
	return core.NewAgent(id, handler)
}

// NewAgentWithState creates an agent definition with seeded internal state.
func NewAgentWithState(id string, handler Handler, initialState any) Agent {
	return core.NewAgentWithState(id, handler, initialState)
}

// ExitAfter returns an exit predicate halting after count processed actions.
func ExitAfter(count int) ExitFunc {
	return core.ExitAfter(count)
}
