package controller

// EventType identifies lifecycle events produced by the controller.
type EventType string

const (
	EventGrounded  EventType = "grounded"
	EventAirborne  EventType = "airborne"
	EventJumpFired EventType = "jump"
)

// Event is a lifecycle notification for audio, UI and other collaborators.
type Event struct {
	Type EventType
	Time float64
	Jump JumpKind // set for EventJumpFired
	// WallBounce is set when the jump pushed off a climbable wall.
	WallBounce bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
