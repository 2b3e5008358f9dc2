package core

import (
	"context"
	"testing"
)

func TestNewAction(t *testing.T) {
	a := NewAction("MOVE", map[string]int{"dx": 1})
	if a.Type != "MOVE" {
		t.Fatalf("unexpected type: %q", a.Type)
	}
	if a.Payload == nil {
		t.Fatal("payload should be set")
	}

	empty := NewAction("TICK", nil)
	if empty.Payload != nil {
		t.Fatal("nil payload should stay nil")
	}
}

func TestAgent_InitialStatePresence(t *testing.T) {
	noop := func(context.Context, Action, Context) error { return nil }

	plain := NewAgent("plain", noop)
	if _, ok := plain.InitialState(); ok {
		t.Error("agent without state should report absent initial state")
	}

	seeded := NewAgentWithState("seeded", noop, 10)
	state, ok := seeded.InitialState()
	if !ok || state.(int) != 10 {
		t.Errorf("expected seeded state 10, got %v (present=%v)", state, ok)
	}

	// A nil seed still counts as "state present".
	nilSeeded := NewAgentWithState("nil-seeded", noop, nil)
	if _, ok := nilSeeded.InitialState(); !ok {
		t.Error("nil initial state should still count as present")
	}
}

func TestExitAfter(t *testing.T) {
	pred := ExitAfter(2)

	stop, err := pred(ExitContext{ActionCount: 1})
	if err != nil || stop {
		t.Errorf("should not exit at count 1 (stop=%v err=%v)", stop, err)
	}

	stop, err = pred(ExitContext{ActionCount: 2})
	if err != nil || !stop {
		t.Errorf("should exit at count 2 (stop=%v err=%v)", stop, err)
	}

	stop, err = pred(ExitContext{ActionCount: 5})
	if err != nil || !stop {
		t.Errorf("should stay exited past count 2 (stop=%v err=%v)", stop, err)
	}
}
