package simulation

import (
	"context"
	"sync"
	"testing"

	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, optFns ...func(o *Options)) *Simulation {
	t.Helper()

	sim, err := New(optFns...)
	require.NoError(t, err)

	return sim
}

func TestNew_RequiresExitPredicate(t *testing.T) {
	_, err := New(func(o *Options) {
		o.Agents = []core.Agent{core.NewAgent("a", func(context.Context, core.Action, core.Context) error { return nil })}
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit predicate")
}

func TestNew_RejectsDuplicateAgentIDs(t *testing.T) {
	noop := func(context.Context, core.Action, core.Context) error { return nil }

	_, err := New(func(o *Options) {
		o.Agents = []core.Agent{core.NewAgent("a", noop), core.NewAgent("a", noop)}
		o.ShouldExit = core.ExitAfter(1)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate agent id "a"`)
}

func TestNew_RejectsInvalidAgentDefinitions(t *testing.T) {
	noop := func(context.Context, core.Action, core.Context) error { return nil }

	_, err := New(func(o *Options) {
		o.Agents = []core.Agent{core.NewAgent("", noop)}
		o.ShouldExit = core.ExitAfter(1)
	})
	require.Error(t, err)

	_, err = New(func(o *Options) {
		o.Agents = []core.Agent{core.NewAgent("a", nil)}
		o.ShouldExit = core.ExitAfter(1)
	})
	require.Error(t, err)
}

// The canonical bounded-run scenario: one incrementing agent, exit after two
// processed actions. The third dispatch must never apply.
func TestSimulation_IncrementScenario(t *testing.T) {
	inc := core.NewAgent("counter", func(_ context.Context, action core.Action, turn core.Context) error {
		if action.Type != "INCREMENT" {
			return nil
		}

		turn.UpdateGlobalState(func(current any) any {
			return current.(int) + action.Payload.(int)
		})

		return nil
	})

	sim := newSim(t, func(o *Options) {
		o.InitialGlobalState = 0
		o.Agents = []core.Agent{inc}
		o.ShouldExit = core.ExitAfter(2)
	})

	ctx := context.Background()
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("INCREMENT", 5)))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("INCREMENT", 8)))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("INCREMENT", 1)))

	assert.Equal(t, 13, sim.GlobalState())
	assert.Equal(t, 2, sim.ActionCount())
	assert.True(t, sim.Exited())
}

// Cascading dispatch: START triggers INCREMENT triggers DOUBLE, each step
// enqueued from within a handler and processed by the same drain loop. Every
// agent must observe the three actions in dequeue order.
func TestSimulation_CascadeScenario(t *testing.T) {
	recA, recB, recC := testutil.NewRecorder(), testutil.NewRecorder(), testutil.NewRecorder()

	a := core.NewAgent("a", func(ctx context.Context, action core.Action, turn core.Context) error {
		recA.Append(action)

		if action.Type == "START" {
			return turn.Dispatch(ctx, core.NewAction("INCREMENT", 1))
		}

		return nil
	})

	b := core.NewAgent("b", func(ctx context.Context, action core.Action, turn core.Context) error {
		recB.Append(action)

		if action.Type == "INCREMENT" {
			turn.UpdateGlobalState(func(current any) any {
				return current.(int) + action.Payload.(int)
			})

			return turn.Dispatch(ctx, core.NewAction("DOUBLE", nil))
		}

		return nil
	})

	c := core.NewAgent("c", func(_ context.Context, action core.Action, turn core.Context) error {
		recC.Append(action)

		if action.Type == "DOUBLE" {
			turn.UpdateGlobalState(func(current any) any {
				return current.(int) * 2
			})
		}

		return nil
	})

	sim := newSim(t, func(o *Options) {
		o.InitialGlobalState = 0
		o.Agents = []core.Agent{a, b, c}
		o.ShouldExit = core.ExitAfter(3)
	})

	require.NoError(t, sim.Dispatch(context.Background(), core.NewAction("START", nil)))

	assert.Equal(t, 2, sim.GlobalState())
	assert.Equal(t, 3, sim.ActionCount())

	want := []string{"START", "INCREMENT", "DOUBLE"}
	assert.Equal(t, want, recA.Types())
	assert.Equal(t, want, recB.Types())
	assert.Equal(t, want, recC.Types())
}

func TestSimulation_DispatchAfterExitIsNoOp(t *testing.T) {
	rec := testutil.NewRecorder()

	sim := newSim(t, func(o *Options) {
		o.Agents = []core.Agent{rec.Agent("observer")}
		o.ShouldExit = core.ExitAfter(1)
	})

	ctx := context.Background()
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", nil)))
	require.True(t, sim.Exited())

	require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", nil)))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", nil)))

	assert.Equal(t, 1, sim.ActionCount())
	assert.Equal(t, 1, rec.Len())
}

// Actions still queued when the exit predicate fires must be discarded.
func TestSimulation_ExitDropsQueuedActions(t *testing.T) {
	rec := testutil.NewRecorder()

	flood := core.NewAgent("flood", func(ctx context.Context, action core.Action, turn core.Context) error {
		rec.Append(action)

		if action.Type == "START" {
			for i := 0; i < 5; i++ {
				if err := turn.Dispatch(ctx, core.NewAction("FOLLOWUP", i)); err != nil {
					return err
				}
			}
		}

		return nil
	})

	sim := newSim(t, func(o *Options) {
		o.Agents = []core.Agent{flood}
		o.ShouldExit = core.ExitAfter(1)
	})

	require.NoError(t, sim.Dispatch(context.Background(), core.NewAction("START", nil)))

	assert.True(t, sim.Exited())
	assert.Equal(t, 1, sim.ActionCount())
	assert.Equal(t, []string{"START"}, rec.Types())
}

// Every agent processing the same action must see the identical pre-action
// peer snapshot, even though agents mutate their own state while processing.
func TestSimulation_PeerSnapshotConsistency(t *testing.T) {
	var mu sync.Mutex

	seen := map[string][][2]int{} // agent id -> per-action [x, y] peer states

	mkAgent := func(id string) core.Agent {
		return core.NewAgentWithState(id, func(_ context.Context, _ core.Action, turn core.Context) error {
			peers := turn.Peers()

			var snap [2]int
			for _, p := range peers {
				switch p.ID {
				case "x":
					snap[0] = p.State.(int)
				case "y":
					snap[1] = p.State.(int)
				}
			}

			mu.Lock()
			seen[turn.AgentID()] = append(seen[turn.AgentID()], snap)
			mu.Unlock()

			turn.UpdateInternalState(func(current any) any {
				return current.(int) + 1
			})

			return nil
		}, 0)
	}

	sim := newSim(t, func(o *Options) {
		o.Agents = []core.Agent{mkAgent("x"), mkAgent("y")}
		o.ShouldExit = core.ExitAfter(2)
	})

	ctx := context.Background()
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", nil)))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", nil)))

	// First action: both agents saw {0,0}; second action: both saw {1,1}.
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, seen["x"])
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, seen["y"])
}

func TestSimulation_StateQueries(t *testing.T) {
	noop := func(context.Context, core.Action, core.Context) error { return nil }

	sim := newSim(t, func(o *Options) {
		o.InitialGlobalState = "world"
		o.Agents = []core.Agent{
			core.NewAgentWithState("stateful", noop, 42),
			core.NewAgent("stateless", noop),
		}
		o.ShouldExit = core.ExitAfter(1)
	})

	assert.Equal(t, "world", sim.GlobalState())

	state, ok := sim.AgentState("stateful")
	require.True(t, ok)
	assert.Equal(t, 42, state)

	_, ok = sim.AgentState("stateless")
	assert.False(t, ok)

	_, ok = sim.AgentState("never-registered")
	assert.False(t, ok)

	states := sim.AllAgentStates()
	assert.Equal(t, map[string]any{"stateful": 42, "stateless": nil}, states)

	// The returned map is a copy; mutating it must not leak into the engine.
	states["stateful"] = -1
	state, _ = sim.AgentState("stateful")
	assert.Equal(t, 42, state)
}

// Accessor reads are live: updates a handler performed earlier in the same
// invocation are visible on subsequent reads, and sequential updates compose.
func TestSimulation_LiveReadsWithinHandler(t *testing.T) {
	var observedGlobal, observedInternal any

	ag := core.NewAgent("a", func(_ context.Context, _ core.Action, turn core.Context) error {
		turn.UpdateGlobalState(func(current any) any { return current.(int) + 1 })
		turn.UpdateGlobalState(func(current any) any { return current.(int) + 1 })
		observedGlobal = turn.GlobalState()

		turn.UpdateInternalState(func(current any) any { return "set" })
		observedInternal, _ = turn.InternalState()

		return nil
	})

	sim := newSim(t, func(o *Options) {
		o.InitialGlobalState = 0
		o.Agents = []core.Agent{ag}
		o.ShouldExit = core.ExitAfter(1)
	})

	require.NoError(t, sim.Dispatch(context.Background(), core.NewAction("TICK", nil)))

	assert.Equal(t, 2, observedGlobal)
	assert.Equal(t, "set", observedInternal)
	assert.Equal(t, 2, sim.GlobalState())
}

func TestSimulation_ExitContextContents(t *testing.T) {
	var captured core.ExitContext

	ag := core.NewAgentWithState("a", func(_ context.Context, _ core.Action, turn core.Context) error {
		turn.UpdateGlobalState(func(any) any { return "after" })
		turn.UpdateInternalState(func(any) any { return 7 })
		return nil
	}, 0)

	sim := newSim(t, func(o *Options) {
		o.InitialGlobalState = "before"
		o.Agents = []core.Agent{ag}
		o.ShouldExit = func(ec core.ExitContext) (bool, error) {
			captured = ec
			return true, nil
		}
	})

	require.NoError(t, sim.Dispatch(context.Background(), core.NewAction("GO", "payload")))

	assert.Equal(t, "after", captured.GlobalState)
	assert.Equal(t, map[string]any{"a": 7}, captured.AgentStates)
	assert.Equal(t, "GO", captured.LastAction.Type)
	assert.Equal(t, "payload", captured.LastAction.Payload)
	assert.Equal(t, 1, captured.ActionCount)
}
