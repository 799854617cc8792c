package system

import (
	"log"

	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// RequestState queues a state change as a one-shot request entity.
func RequestState(w *ecs.World, next component.GameState) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.StateRequestComponent.Kind(), &component.StateRequest{Next: next})
}

// ConsumeStateRequest destroys every pending request and returns the last one.
func ConsumeStateRequest(w *ecs.World) (component.GameState, bool) {
	var (
		next  component.GameState
		found bool
		ents  []ecs.Entity
	)
	ecs.ForEach(w, component.StateRequestComponent.Kind(), func(e ecs.Entity, req *component.StateRequest) {
		ents = append(ents, e)
		if req == nil {
			return
		}
		next = req.Next
		found = true
	})
	for _, e := range ents {
		ecs.DestroyEntity(w, e)
	}
	return next, found
}

// DespawnStateScoped returns an exit hook that destroys everything owned by state.
func DespawnStateScoped(state component.GameState) func(*ecs.World) {
	return func(w *ecs.World) {
		var doomed []ecs.Entity
		ecs.ForEach(w, component.StateScopedComponent.Kind(), func(e ecs.Entity, s *component.StateScoped) {
			if s.State == state {
				doomed = append(doomed, e)
			}
		})
		for _, e := range doomed {
			ecs.DestroyEntity(w, e)
		}
		if Debug {
			log.Printf("state: despawned %d entities scoped to %s", len(doomed), state)
		}
	}
}

// MenuInputSystem starts a run on confirm.
type MenuInputSystem struct{}

func NewMenuInputSystem() *MenuInputSystem {
	return &MenuInputSystem{}
}

func (m *MenuInputSystem) Update(w *ecs.World) {
	if CurrentInput(w).Confirm {
		RequestState(w, component.StateInGame)
	}
}

// GameOverInputSystem returns to the menu on confirm.
type GameOverInputSystem struct{}

func NewGameOverInputSystem() *GameOverInputSystem {
	return &GameOverInputSystem{}
}

func (g *GameOverInputSystem) Update(w *ecs.World) {
	if CurrentInput(w).Confirm {
		RequestState(w, component.StateMainMenu)
	}
}
