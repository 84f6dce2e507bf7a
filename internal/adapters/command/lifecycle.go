package command

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// LaunchState is the lifecycle state of a single invocation.
type LaunchState string

// Launch states.
const (
	StatePending  LaunchState = "pending"
	StateRunning  LaunchState = "running"
	StateExited   LaunchState = "exited"
	StateFailed   LaunchState = "failed"
	StateTimedOut LaunchState = "timedout"
)

// Lifecycle events.
const (
	eventStarted  = "STARTED"
	eventExited   = "EXITED"
	eventFailed   = "FAILED"
	eventTimedOut = "TIMED_OUT"
	eventReset    = "RESET"
)

// launchContext is the statekit context type for an invocation.
type launchContext struct {
	FileName string
}

// lifecycle tracks one invocation through pending → running → a terminal state.
// A process that never starts goes straight from pending to failed.
type lifecycle struct {
	interp *statekit.Interpreter[launchContext]
}

func newLifecycle(fileName string) (*lifecycle, error) {
	machine, err := statekit.NewMachine[launchContext]("launch").
		WithInitial("pending").
		WithContext(launchContext{FileName: fileName}).
		State("pending").
		On(eventStarted).Target("running").
		On(eventFailed).Target("failed").Done().
		State("running").
		On(eventExited).Target("exited").
		On(eventFailed).Target("failed").
		On(eventTimedOut).Target("timedout").Done().
		State("exited").
		On(eventReset).Target("pending").Done().
		State("failed").
		On(eventReset).Target("pending").Done().
		State("timedout").
		On(eventReset).Target("pending").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build launch state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &lifecycle{interp: interp}, nil
}

func (l *lifecycle) send(event string) {
	if l == nil {
		return
	}
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

// State returns the current state. A nil lifecycle reports pending.
func (l *lifecycle) State() LaunchState {
	if l == nil {
		return StatePending
	}
	return LaunchState(l.interp.State().Value)
}

func (l *lifecycle) stop() {
	if l == nil {
		return
	}
	l.interp.Stop()
}
