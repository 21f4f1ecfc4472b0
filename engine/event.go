package engine

// Event is a discrete input delivered once per frame.
type Event int

const (
	EventNone Event = iota
	EventQuit
	EventRotate
	EventMoveLeft
	EventMoveRight
)

func (e Event) String() string {
	switch e {
	case EventQuit:
		return "quit"
	case EventRotate:
		return "rotate"
	case EventMoveLeft:
		return "move-left"
	case EventMoveRight:
		return "move-right"
	}
	return "none"
}

// EventSource is polled once per frame for pending input.
type EventSource interface {
	Poll() []Event
}

// EventSourceFunc adapts a function to EventSource.
type EventSourceFunc func() []Event

func (f EventSourceFunc) Poll() []Event {
	return f()
}
