package simulation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/agentsim/core"
	"github.com/hupe1980/agentsim/logging"
)

// Options configures a Simulation instance.
type Options struct {
	// InitialGlobalState seeds the shared state value visible to all agents.
	// Any value is accepted, including nil.
	InitialGlobalState any

	// Agents is the ordered list of agent definitions. The supplied order is
	// the registration order used for action fan-out and peer snapshots and
	// stays stable for the simulation's lifetime. Ids must be unique.
	Agents []core.Agent

	// ShouldExit is the caller-supplied run-completion predicate, evaluated
	// exactly once per fully processed action. Required.
	ShouldExit core.ExitFunc

	// HistoryLimit bounds the processed-action history. Zero keeps the full
	// history; a positive value keeps only the most recent records.
	HistoryLimit int

	// Logger receives structured engine diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// agentRuntime pairs an agent definition with its live internal state.
type agentRuntime struct {
	def      core.Agent
	state    any
	hasState bool
}

// envelope wraps a queued action with a correlation id for logs and history.
type envelope struct {
	id     string
	action core.Action
}

// Simulation is the event-driven coordination engine. See the package
// documentation for the dispatch/drain, consistency and exit semantics.
// All exported methods are safe for concurrent use.
type Simulation struct {
	runID      string
	shouldExit core.ExitFunc
	limit      int
	logger     logging.Logger

	mu          sync.Mutex
	agents      []agentRuntime
	index       map[string]*agentRuntime
	globalState any
	queue       []envelope
	draining    bool
	exited      bool
	actionCount int
	history     []core.Record
	done        chan struct{}
}

// New creates a Simulation from the supplied options. It returns an error
// when the exit predicate is missing, an agent definition lacks an id or
// handler, or two agents share an id.
func New(optFns ...func(o *Options)) (*Simulation, error) {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.ShouldExit == nil {
		return nil, errors.New("simulation: exit predicate is required")
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	s := &Simulation{
		runID:       uuid.NewString(),
		shouldExit:  opts.ShouldExit,
		limit:       opts.HistoryLimit,
		logger:      opts.Logger,
		agents:      make([]agentRuntime, 0, len(opts.Agents)),
		index:       make(map[string]*agentRuntime, len(opts.Agents)),
		globalState: opts.InitialGlobalState,
		done:        make(chan struct{}),
	}

	for _, def := range opts.Agents {
		if def.ID() == "" {
			return nil, errors.New("simulation: agent id must not be empty")
		}

		if def.Handler() == nil {
			return nil, fmt.Errorf("simulation: agent %q has no handler", def.ID())
		}

		if _, exists := s.index[def.ID()]; exists {
			return nil, fmt.Errorf("simulation: duplicate agent id %q", def.ID())
		}

		state, hasState := def.InitialState()
		s.agents = append(s.agents, agentRuntime{def: def, state: state, hasState: hasState})
		s.index[def.ID()] = &s.agents[len(s.agents)-1]
	}

	return s, nil
}

// RunID returns the unique identifier of this simulation run.
func (s *Simulation) RunID() string { return s.runID }

// Dispatch submits an action for processing.
//
// After the simulation has exited, Dispatch is a defined no-op returning nil.
// If a drain loop is already in flight the action is appended and Dispatch
// returns nil immediately; the ongoing drain will reach it. Otherwise the
// calling goroutine runs the drain loop to completion and receives any
// handler or exit-predicate error produced along the way. ctx is passed to
// every handler invoked by the drain this call runs.
func (s *Simulation) Dispatch(ctx context.Context, action core.Action) error {
	s.mu.Lock()

	if s.exited {
		s.mu.Unlock()
		s.logger.Debug("action dropped after exit", "run_id", s.runID, "action_type", action.Type)

		return nil
	}

	env := envelope{id: uuid.NewString(), action: action}
	s.queue = append(s.queue, env)

	if s.draining {
		s.mu.Unlock()
		s.logger.Debug("action enqueued", "run_id", s.runID, "action_id", env.id, "action_type", action.Type)

		return nil
	}

	s.draining = true
	s.mu.Unlock()

	s.logger.Debug("drain started", "run_id", s.runID, "action_id", env.id, "action_type", action.Type)

	return s.drain(ctx)
}

// drain processes queued actions until the queue empties, the exit predicate
// halts the run, or a processing step fails. Exactly one drain runs at a
// time; the draining flag is cleared on every return path so a later
// Dispatch can restart the loop.
func (s *Simulation) drain(ctx context.Context) error {
	for {
		s.mu.Lock()

		if s.exited || len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()

			return nil
		}

		env := s.queue[0]
		s.queue = s.queue[1:]
		peers := s.peerSnapshotLocked()
		s.mu.Unlock()

		if err := s.process(ctx, env, peers); err != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()

			return err
		}

		s.mu.Lock()
		more := !s.exited && len(s.queue) > 0
		s.mu.Unlock()

		if more {
			// Let externally scheduled goroutines (timers an agent set up
			// while handling the previous action) enqueue before the next
			// action is popped.
			runtime.Gosched()
		}
	}
}

// process runs one action through every agent's handler, waits for the join
// barrier, advances the counter and evaluates the exit predicate.
func (s *Simulation) process(ctx context.Context, env envelope, peers []core.AgentSnapshot) error {
	start := time.Now()

	var wg sync.WaitGroup

	handlerErrs := make([]error, len(s.agents))

	for i := range s.agents {
		rt := &s.agents[i]
		turn := &turnContext{sim: s, agentID: rt.def.ID(), peers: peers}

		wg.Add(1)

		go func(i int, rt *agentRuntime) {
			defer wg.Done()

			if err := rt.def.Handler()(ctx, env.action, turn); err != nil {
				handlerErrs[i] = fmt.Errorf("agent %q: %w", rt.def.ID(), err)
			}
		}(i, rt)
	}

	wg.Wait()

	if err := errors.Join(handlerErrs...); err != nil {
		s.logger.Error("action processing failed", "run_id", s.runID, "action_id", env.id, "action_type", env.action.Type, "error", err)

		return err
	}

	s.mu.Lock()
	s.actionCount++
	count := s.actionCount

	s.history = append(s.history, core.Record{
		ID:          env.id,
		Action:      env.action,
		ActionCount: count,
		Timestamp:   time.Now().UTC(),
	})
	if s.limit > 0 && len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}

	exitCtx := core.ExitContext{
		GlobalState: s.globalState,
		AgentStates: s.agentStatesLocked(),
		LastAction:  env.action,
		ActionCount: count,
	}
	s.mu.Unlock()

	s.logger.Debug("action processed", "run_id", s.runID, "action_id", env.id, "action_type", env.action.Type, "action_count", count, "duration", time.Since(start))

	stop, err := s.shouldExit(exitCtx)
	if err != nil {
		return fmt.Errorf("exit predicate: %w", err)
	}

	if stop {
		s.mu.Lock()
		dropped := len(s.queue)
		s.queue = nil
		s.exited = true
		close(s.done)
		s.mu.Unlock()

		s.logger.Info("simulation exited", "run_id", s.runID, "action_count", count, "dropped_actions", dropped)
	}

	return nil
}

// peerSnapshotLocked captures all agents' states in registration order.
// Callers must hold s.mu.
func (s *Simulation) peerSnapshotLocked() []core.AgentSnapshot {
	peers := make([]core.AgentSnapshot, len(s.agents))
	for i, rt := range s.agents {
		peers[i] = core.AgentSnapshot{ID: rt.def.ID(), State: rt.state, HasState: rt.hasState}
	}

	return peers
}

// agentStatesLocked maps every registered agent id to its current internal
// state (nil for agents without one). Callers must hold s.mu.
func (s *Simulation) agentStatesLocked() map[string]any {
	states := make(map[string]any, len(s.agents))
	for _, rt := range s.agents {
		states[rt.def.ID()] = rt.state
	}

	return states
}

// GlobalState returns the current shared state value.
func (s *Simulation) GlobalState() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.globalState
}

// AgentState returns the internal state of the agent with the given id. The
// second return is false when the id was never registered or the agent holds
// no internal state.
func (s *Simulation) AgentState(id string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.index[id]
	if !ok || !rt.hasState {
		return nil, false
	}

	return rt.state, true
}

// AllAgentStates returns a fresh map of every registered agent id to its
// current internal state (nil for agents without one).
func (s *Simulation) AllAgentStates() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.agentStatesLocked()
}

// ActionCount returns the number of actions that completed full processing.
func (s *Simulation) ActionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.actionCount
}

// Exited reports whether the exit predicate has halted the simulation.
func (s *Simulation) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exited
}

// Wait blocks until the simulation has exited or ctx is cancelled. It is
// safe to call from multiple goroutines, before or after exit; every
// waiter releases once the exit condition is met, immediately so if it
// already was.
func (s *Simulation) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// History returns a defensive copy of the processed-action records, oldest
// first (bounded by HistoryLimit when configured).
func (s *Simulation) History() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]core.Record, len(s.history))
	copy(records, s.history)

	return records
}
