package ecs

// StateMachine schedules one system set per state and runs enter/exit hooks
// when a requested transition is applied.
type StateMachine[S comparable] struct {
	current S
	next    S
	pending bool
	started bool

	// Allow, when set, vetoes transitions it returns false for.
	Allow func(from, to S) bool

	enter      map[S][]func(*World)
	exit       map[S][]func(*World)
	schedulers map[S]*Scheduler
}

func NewStateMachine[S comparable](initial S) *StateMachine[S] {
	return &StateMachine[S]{
		current:    initial,
		enter:      make(map[S][]func(*World)),
		exit:       make(map[S][]func(*World)),
		schedulers: make(map[S]*Scheduler),
	}
}

func (m *StateMachine[S]) Current() S {
	return m.current
}

func (m *StateMachine[S]) OnEnter(s S, hooks ...func(*World)) {
	m.enter[s] = append(m.enter[s], hooks...)
}

func (m *StateMachine[S]) OnExit(s S, hooks ...func(*World)) {
	m.exit[s] = append(m.exit[s], hooks...)
}

// Systems returns the scheduler that runs while s is current.
func (m *StateMachine[S]) Systems(s S) *Scheduler {
	sched, ok := m.schedulers[s]
	if !ok {
		sched = NewScheduler()
		m.schedulers[s] = sched
	}
	return sched
}

// Request queues a transition for the next Apply. Requests for the current
// state or vetoed by Allow are dropped; a later request replaces an earlier one.
func (m *StateMachine[S]) Request(next S) bool {
	if next == m.current {
		return false
	}
	if m.Allow != nil && !m.Allow(m.current, next) {
		return false
	}
	m.next = next
	m.pending = true
	return true
}

func (m *StateMachine[S]) Pending() (S, bool) {
	return m.next, m.pending
}

// Start runs the initial state's enter hooks once.
func (m *StateMachine[S]) Start(w *World) {
	if m.started {
		return
	}
	m.started = true
	for _, hook := range m.enter[m.current] {
		hook(w)
	}
}

// Update runs the current state's systems.
func (m *StateMachine[S]) Update(w *World) {
	if !m.started {
		m.Start(w)
	}
	m.schedulers[m.current].Update(w)
}

// Apply performs a pending transition and reports whether one happened.
func (m *StateMachine[S]) Apply(w *World) bool {
	if !m.pending {
		return false
	}
	from, to := m.current, m.next
	m.pending = false
	var zero S
	m.next = zero

	for _, hook := range m.exit[from] {
		hook(w)
	}
	m.current = to
	for _, hook := range m.enter[to] {
		hook(w)
	}
	return true
}
