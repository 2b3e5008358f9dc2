package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/agentsim/core"
)

// Recorder captures the actions a handler received, in receipt order, safe
// for concurrent use. Build the agent with Agent():
//
//	rec := testutil.NewRecorder()
//	ag := rec.Agent("observer")
type Recorder struct {
	mu      sync.Mutex
	actions []core.Action
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Agent returns an agent definition whose handler records every action.
func (r *Recorder) Agent(id string) core.Agent {
	return core.NewAgent(id, func(_ context.Context, action core.Action, _ core.Context) error {
		r.Append(action)
		return nil
	})
}

// Append records one action.
func (r *Recorder) Append(action core.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

// Actions returns a copy of the recorded actions in receipt order.
func (r *Recorder) Actions() []core.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]core.Action, len(r.actions))
	copy(actions, r.actions)
	return actions
}

// Types returns just the type tags of the recorded actions, in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.actions))
	for i, a := range r.actions {
		types[i] = a.Type
	}
	return types
}

// Len returns the number of recorded actions.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}
