package engine

import "time"

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime time.Duration
	Events    []Event
	Commands  *Commands
	State     *State
}

func newUpdateFrame(dt time.Duration, events []Event, state *State) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Events:    events,
		Commands:  newCommands(),
		State:     state,
	}
}
