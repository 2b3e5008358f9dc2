package core

// ExitContext is the state handed to the exit predicate after each fully
// processed action. GlobalState and AgentStates reflect the engine state
// after the action's join barrier; AgentStates contains an entry for every
// registered agent (nil for agents without internal state).
type ExitContext struct {
	GlobalState any
	AgentStates map[string]any
	LastAction  Action
	ActionCount int
}

// ExitFunc decides whether a simulation run is complete. It is invoked
// exactly once per fully processed action, never per enqueue. Returning true
// permanently halts the simulation and discards all still-queued actions.
// A non-nil error propagates out of the Dispatch call that drove this
// processing step and leaves the exit state unresolved.
type ExitFunc func(ExitContext) (bool, error)

// ExitAfter returns an ExitFunc that halts once count actions have been
// processed. Convenience for bounded runs and tests.
func ExitAfter(count int) ExitFunc {
	return func(ec ExitContext) (bool, error) {
		return ec.ActionCount >= count, nil
	}
}
