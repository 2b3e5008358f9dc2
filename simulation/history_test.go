package simulation

import (
	"context"
	"testing"

	"github.com/hupe1980/agentsim/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RecordsProcessedActions(t *testing.T) {
	ag := core.NewAgent("a", func(context.Context, core.Action, core.Context) error { return nil })

	sim := newSim(t, func(o *Options) {
		o.Agents = []core.Agent{ag}
		o.ShouldExit = core.ExitAfter(3)
	})

	ctx := context.Background()
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("FIRST", nil)))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("SECOND", "p")))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("THIRD", nil)))
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("DROPPED", nil)))

	records := sim.History()
	require.Len(t, records, sim.ActionCount())
	require.Len(t, records, 3)

	assert.Equal(t, "FIRST", records[0].Action.Type)
	assert.Equal(t, "SECOND", records[1].Action.Type)
	assert.Equal(t, "p", records[1].Action.Payload)
	assert.Equal(t, "THIRD", records[2].Action.Type)

	for i, rec := range records {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, i+1, rec.ActionCount)
		assert.False(t, rec.Timestamp.IsZero())
	}
}

func TestHistory_LimitKeepsMostRecent(t *testing.T) {
	ag := core.NewAgent("a", func(context.Context, core.Action, core.Context) error { return nil })

	sim := newSim(t, func(o *Options) {
		o.Agents = []core.Agent{ag}
		o.ShouldExit = core.ExitAfter(5)
		o.HistoryLimit = 2
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", i)))
	}

	records := sim.History()
	require.Len(t, records, 2)
	assert.Equal(t, 4, records[0].ActionCount)
	assert.Equal(t, 5, records[1].ActionCount)
}

func TestHistory_ReturnsDefensiveCopy(t *testing.T) {
	ag := core.NewAgent("a", func(context.Context, core.Action, core.Context) error { return nil })

	sim := newSim(t, func(o *Options) {
		o.Agents = []core.Agent{ag}
		o.ShouldExit = core.ExitAfter(2)
	})

	ctx := context.Background()
	require.NoError(t, sim.Dispatch(ctx, core.NewAction("TICK", nil)))

	records := sim.History()
	records[0].Action.Type = "mutated"

	assert.Equal(t, "TICK", sim.History()[0].Action.Type)
}
