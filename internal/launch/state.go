package launch

import (
	"fmt"
	"time"
)

// State is the position of a single invocation in the launch lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSpawning   State = "spawning"
	StateRunning    State = "running"
	StateAwaited    State = "awaited"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

var transitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StateSpawning, StateFailed},
	StateSpawning:   {StateRunning, StateFailed},
	StateRunning:    {StateAwaited, StateFailed},
	StateAwaited:    {StateDone, StateFailed},
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event describes one lifecycle transition of an invocation.
type Event struct {
	Timestamp time.Time
	State     State
	Spec      CommandSpec
	PID       int
	Outcome   ExitOutcome
	Err       error
}

// Observer receives every lifecycle event of an invocation in order.
type Observer func(Event)

type invocation struct {
	state     State
	spec      CommandSpec
	pid       int
	observers []Observer
}

func (inv *invocation) enter(next State, outcome ExitOutcome, err error) {
	if !inv.state.CanTransition(next) {
		panic(fmt.Sprintf("launch: invalid transition %s -> %s", inv.state, next))
	}
	inv.state = next
	evt := Event{
		Timestamp: time.Now(),
		State:     next,
		Spec:      inv.spec,
		PID:       inv.pid,
		Outcome:   outcome,
		Err:       err,
	}
	for _, observe := range inv.observers {
		observe(evt)
	}
}
