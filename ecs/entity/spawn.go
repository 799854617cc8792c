package entity

import (
	"fmt"

	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/prefabs"
)

// scoped tags e as owned by state so it is destroyed when state exits.
func scoped(w *ecs.World, e ecs.Entity, state component.GameState) error {
	return ecs.Add(w, e, component.StateScopedComponent.Kind(), &component.StateScoped{State: state})
}

func buildAt(w *ecs.World, prefab string, x, y float64, state component.GameState) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := scoped(w, e, state); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func SpawnMenu(w *ecs.World) (ecs.Entity, error) {
	e, err := buildAt(w, "menu.yaml", 0, 0, component.StateMainMenu)
	if err != nil {
		return 0, fmt.Errorf("menu: %w", err)
	}
	return e, nil
}

func SpawnGameOver(w *ecs.World) (ecs.Entity, error) {
	e, err := buildAt(w, "game_over.yaml", 0, 0, component.StateGameOver)
	if err != nil {
		return 0, fmt.Errorf("game over: %w", err)
	}
	return e, nil
}

// SpawnPipes lays out one bottom and one flipped top pipe per column.
func SpawnPipes(w *ecs.World, layout prefabs.PipeLayoutSpec, state component.GameState) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, 2*(layout.Last-layout.First))
	for i := layout.First; i < layout.Last; i++ {
		x := float64(i) * layout.Spacing
		for _, top := range []bool{false, true} {
			y := -layout.Pos
			if top {
				y = layout.Pos
			}
			e, err := buildAt(w, "pipe.yaml", x, y, state)
			if err != nil {
				return out, fmt.Errorf("pipes: %w", err)
			}
			if pipe, ok := ecs.Get(w, e, component.PipeComponent.Kind()); ok {
				pipe.Top = top
				pipe.Base = layout.Pos
			}
			if top {
				if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
					sprite.FlipY = true
				}
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func SpawnFloor(w *ecs.World, layout prefabs.TileLayoutSpec, state component.GameState) ([]ecs.Entity, error) {
	return spawnTiles(w, "floor.yaml", layout, state)
}

func SpawnBackground(w *ecs.World, layout prefabs.TileLayoutSpec, state component.GameState) ([]ecs.Entity, error) {
	return spawnTiles(w, "background.yaml", layout, state)
}

func spawnTiles(w *ecs.World, prefab string, layout prefabs.TileLayoutSpec, state component.GameState) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, layout.Last-layout.First)
	for i := layout.First; i < layout.Last; i++ {
		e, err := buildAt(w, prefab, float64(i)*layout.Width, layout.Y, state)
		if err != nil {
			return out, fmt.Errorf("%s: %w", prefab, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// SpawnPlayer returns the live player if there is one, so at most one player
// exists at a time.
func SpawnPlayer(w *ecs.World, at prefabs.PointSpec) (ecs.Entity, error) {
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		return e, nil
	}
	e, err := buildAt(w, "player.yaml", at.X, at.Y, component.StateInGame)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

func SpawnScore(w *ecs.World) (ecs.Entity, error) {
	e, err := BuildEntity(w, "score.yaml")
	if err != nil {
		return 0, fmt.Errorf("score: %w", err)
	}
	if err := scoped(w, e, component.StateInGame); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("score: %w", err)
	}
	return e, nil
}

func SpawnTrail(w *ecs.World, at prefabs.PointSpec) (ecs.Entity, error) {
	e, err := buildAt(w, "trail.yaml", at.X, at.Y, component.StateInGame)
	if err != nil {
		return 0, fmt.Errorf("trail: %w", err)
	}
	return e, nil
}

// NewInput, NewHighScore, NewSoundEffects and NewMusicPlayer build the
// process-lifetime singletons; they are not state scoped.

func NewInput(w *ecs.World) (ecs.Entity, error) {
	return singleton(w, "input.yaml", component.InputComponent.Kind())
}

func NewHighScore(w *ecs.World) (ecs.Entity, error) {
	return singleton(w, "high_score.yaml", component.HighScoreComponent.Kind())
}

func NewSoundEffects(w *ecs.World) (ecs.Entity, error) {
	return singleton(w, "sound_effects.yaml", component.AudioComponent.Kind())
}

func NewMusicPlayer(w *ecs.World) (ecs.Entity, error) {
	return singleton(w, "music_player.yaml", component.MusicPlayerComponent.Kind())
}

func singleton[T any](w *ecs.World, prefab string, kind component.ComponentKind[T]) (ecs.Entity, error) {
	if e, ok := ecs.First(w, kind); ok {
		return e, nil
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", prefab, err)
	}
	return e, nil
}
