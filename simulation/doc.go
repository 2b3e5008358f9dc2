// Package simulation implements the event-driven coordination engine at the
// heart of AgentSim.
//
// The Simulation owns four pieces of state: the opaque global state value,
// one opaque internal state value per registered agent, a FIFO queue of
// pending actions, and the exit state (flag + processed-action counter). All
// of it is scoped to the Simulation instance; nothing is process-global.
//
// # Dispatch & Drain
//
// Dispatch appends an action to the queue. If no drain loop is in flight the
// calling goroutine becomes the drain loop: it pops one action at a time,
// fans the action out to every registered agent's handler concurrently,
// waits for all handlers to settle (the per-action join barrier), increments
// the processed-action counter, evaluates the exit predicate, and continues
// until the queue empties, the predicate halts the run, or a handler fails.
// Dispatch calls made while a drain is in flight append and return
// immediately; exactly one drain loop is ever active per instance.
//
// The check-and-start-if-idle decision is taken on every enqueue path —
// the public Dispatch and the per-turn Context.Dispatch alike — so an action
// dispatched from a deferred continuation (a timer goroutine firing after
// the original drain already returned) restarts the loop instead of sitting
// silently in the queue.
//
// # Consistency
//
// Handlers for the same action run concurrently, but every one of them sees
// the identical peer snapshot captured before the first handler started.
// State mutations go through transform functions serialized by the engine
// mutex, so read-transform-store is atomic per update even under concurrent
// handlers. Between two queue items the loop yields the processor once,
// giving externally scheduled goroutines a chance to enqueue follow-ups.
//
// # Exit
//
// Once the exit predicate returns true the simulation is permanently halted:
// remaining queued actions are discarded, later Dispatch calls become
// no-ops, and Wait releases every current and future waiter. Handler and
// predicate failures propagate out of the Dispatch call that drove the
// failing processing step; the engine never retries.
package simulation
