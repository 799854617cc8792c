package ecs

import "testing"

func TestEventQueueTake(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventFlap})
	q.Push(Event{Type: EventPlayerHit, Data: HitEvent{Player: 1, Obstacle: 2}})
	q.Push(Event{Type: EventFlap})

	hits := q.Take(EventPlayerHit)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hit, ok := hits[0].Data.(HitEvent); !ok || hit.Obstacle != 2 {
		t.Fatalf("unexpected payload %#v", hits[0].Data)
	}
	if q.Len() != 2 {
		t.Fatalf("expected 2 flaps left, got %d", q.Len())
	}
	if got := q.Take(EventPlayerHit); got != nil {
		t.Fatalf("expected no more hits, got %v", got)
	}
	if got := q.Take(EventFlap); len(got) != 2 || q.Len() != 0 {
		t.Fatalf("take flaps: got %d events, %d left", len(got), q.Len())
	}
}

func TestWorldEndFrameClearsEvents(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventFlap})
	w.EndFrame()
	if w.Events().Len() != 0 {
		t.Fatalf("expected empty queue after EndFrame, got %d", w.Events().Len())
	}

	var nilQueue *EventQueue
	nilQueue.Push(Event{Type: EventFlap})
	if nilQueue.Len() != 0 {
		t.Fatal("nil queue should stay empty")
	}
}
