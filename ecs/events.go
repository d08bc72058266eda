package ecs

// Event types emitted by the locomotion systems.
const (
	EventLanded  = "landed"
	EventCrouch  = "crouch"
	EventSlide   = "slide"
	EventRespawn = "respawn"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   string
	Entity Entity
	Data   any
}

// Entering reports the bool payload of crouch and slide events.
func (e Event) Entering() bool {
	v, _ := e.Data.(bool)
	return v
}

// EventQueue is a simple FIFO queue. Fixed steps push, the visual step reads
// and then clears it so every consumer sees the same events.
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

// Items returns the pending events without consuming them.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

// Clear drops pending events.
func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
