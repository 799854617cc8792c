package ecs

import (
	"reflect"
	"testing"
)

type countingSystem struct {
	n *int
}

func (s countingSystem) Update(*World) { *s.n++ }

func TestStateMachineTransitions(t *testing.T) {
	const (
		menu = iota
		play
		over
	)

	newMachine := func(log *[]string) *StateMachine[int] {
		m := NewStateMachine(menu)
		m.Allow = func(from, to int) bool { return (from+1)%3 == to }
		names := []string{"menu", "play", "over"}
		for s := menu; s <= over; s++ {
			name := names[s]
			m.OnEnter(s, func(*World) { *log = append(*log, "enter "+name) })
			m.OnExit(s, func(*World) { *log = append(*log, "exit "+name) })
		}
		return m
	}

	cases := []struct {
		name     string
		requests []int
		want     []string
		current  int
	}{
		{"no_request", nil, []string{"enter menu"}, menu},
		{"forward", []int{play}, []string{"enter menu", "exit menu", "enter play"}, play},
		{"same_state_ignored", []int{menu}, []string{"enter menu"}, menu},
		{"skip_vetoed", []int{over}, []string{"enter menu"}, menu},
		{"last_request_wins", []int{play, menu}, []string{"enter menu", "exit menu", "enter play"}, play},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var log []string
			m := newMachine(&log)
			w := NewWorld()
			m.Start(w)
			for _, r := range c.requests {
				m.Request(r)
			}
			m.Apply(w)
			if !reflect.DeepEqual(log, c.want) {
				t.Fatalf("hooks: expected %v, got %v", c.want, log)
			}
			if m.Current() != c.current {
				t.Fatalf("expected state %d, got %d", c.current, m.Current())
			}
			if _, pending := m.Pending(); pending {
				t.Fatal("transition still pending after Apply")
			}
		})
	}
}

func TestStateMachineRunsOnlyCurrentSystems(t *testing.T) {
	var a, b int
	m := NewStateMachine("a")
	m.Systems("a").Add(countingSystem{&a})
	m.Systems("b").Add(countingSystem{&b})
	w := NewWorld()

	m.Update(w)
	m.Request("b")
	if !m.Apply(w) {
		t.Fatal("expected a transition")
	}
	m.Update(w)
	m.Update(w)

	if a != 1 || b != 2 {
		t.Fatalf("expected a=1 b=2, got a=%d b=%d", a, b)
	}
	if m.Apply(w) {
		t.Fatal("Apply without a request should not transition")
	}
}

func TestStateMachineStartRunsEnterOnce(t *testing.T) {
	entered := 0
	m := NewStateMachine(0)
	m.OnEnter(0, func(*World) { entered++ })
	w := NewWorld()

	m.Update(w)
	m.Update(w)
	m.Start(w)
	if entered != 1 {
		t.Fatalf("expected one enter, got %d", entered)
	}
}
