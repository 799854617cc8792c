package ecs

// EventType names a gameplay event.
type EventType string

const (
	// EventPlayerHit fires when the player overlaps a collidable. Data is a
	// HitEvent.
	EventPlayerHit EventType = "player_hit"
	// EventFlap fires when the player flaps.
	EventFlap EventType = "flap"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// HitEvent describes a player collision.
type HitEvent struct {
	Player   Entity
	Obstacle Entity
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

// Take removes and returns every queued event of type t, keeping the rest.
func (q *EventQueue) Take(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
