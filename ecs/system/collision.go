package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// CollisionSystem ends the run when the player's box overlaps any collidable.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (c *CollisionSystem) Update(w *ecs.World) {
	playerEnt, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	player, _ := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())
	pt, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	box := boxAt(pt.X, pt.Y, player.Width, player.Height)

	hit := ecs.Entity(0)
	for _, e := range w.Query(component.CollidableComponent.Kind(), component.TransformComponent.Kind()) {
		if e == playerEnt {
			continue
		}
		col, _ := ecs.Get(w, e, component.CollidableComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if Overlaps(box, boxAt(t.X, t.Y, col.Width, col.Height)) {
			hit = e
			break
		}
	}
	if !hit.Valid() {
		return
	}

	if Debug {
		log.Printf("collision: player %s hit %s", playerEnt, hit)
	}
	PlaySound(w, "die")
	ecs.DestroyEntity(w, playerEnt)
	w.Events().Push(ecs.Event{
		Type: ecs.EventPlayerHit,
		Data: ecs.HitEvent{Player: playerEnt, Obstacle: hit},
	})
}

// boxAt returns the box of size w x h centred on (x, y).
func boxAt(x, y, w, h float64) cp.BB {
	return cp.BB{L: x - w/2, B: y - h/2, R: x + w/2, T: y + h/2}
}

// Overlaps reports strict overlap; boxes that only share an edge do not collide.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

// DeathSystem turns a player hit into a recorded score and a game-over request.
type DeathSystem struct{}

func NewDeathSystem() *DeathSystem {
	return &DeathSystem{}
}

func (d *DeathSystem) Update(w *ecs.World) {
	if len(w.Events().Take(ecs.EventPlayerHit)) == 0 {
		return
	}

	final := currentScore(w)
	ecs.ForEach(w, component.HighScoreComponent.Kind(), func(_ ecs.Entity, hs *component.HighScore) {
		hs.Last = final
		hs.Best = max(hs.Best, final)
	})
	RequestState(w, component.StateGameOver)
}
