package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/ecs/entity"
	"github.com/milk9111/flappy/ecs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame builds a game whose prefabs load without images or audio and
// whose input comes from press. A pressed input is seen for one frame only.
func newTestGame(t *testing.T) (*Game, func(component.Input)) {
	t.Helper()
	old := entity.Assets
	entity.Assets = entity.Loader{
		Image: func(string) (*ebiten.Image, error) { return nil, nil },
		Audio: func(string) (*audio.Player, error) { return nil, nil },
	}
	t.Cleanup(func() { entity.Assets = old })

	g, err := NewGame(Options{Seed: 1})
	require.NoError(t, err)

	var next component.Input
	g.input = ecs.NewScheduler(system.NewInputSystemWith(func() component.Input {
		in := next
		next = component.Input{}
		return in
	}))
	return g, func(in component.Input) { next = in }
}

func frame(t *testing.T, g *Game) {
	t.Helper()
	require.NoError(t, g.Update())
}

func scopedTo(w *ecs.World, state component.GameState) int {
	n := 0
	ecs.ForEach(w, component.StateScopedComponent.Kind(), func(_ ecs.Entity, s *component.StateScoped) {
		if s.State == state {
			n++
		}
	})
	return n
}

func playerY(t *testing.T, w *ecs.World) float64 {
	t.Helper()
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	require.True(t, ok, "no player")
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr.Y
}

func TestGameRunsThroughEveryState(t *testing.T) {
	g, press := newTestGame(t)
	w := g.world

	frame(t, g)
	assert.Equal(t, component.StateMainMenu, g.states.Current())
	assert.Positive(t, scopedTo(w, component.StateMainMenu))

	press(component.Input{Pause: true})
	frame(t, g)
	assert.False(t, g.paused, "pause only applies in game")

	system.RequestState(w, component.StateGameOver)
	frame(t, g)
	assert.Equal(t, component.StateMainMenu, g.states.Current(), "menu cannot skip to game over")
	_, pending := ecs.First(w, component.StateRequestComponent.Kind())
	assert.False(t, pending, "vetoed request is consumed")

	press(component.Input{Flap: true, Confirm: true})
	frame(t, g)
	require.Equal(t, component.StateInGame, g.states.Current())
	assert.Zero(t, scopedTo(w, component.StateMainMenu))
	assert.Positive(t, scopedTo(w, component.StateInGame))
	assert.False(t, g.paused)
	assert.Len(t, w.Query(component.PlayerTagComponent.Kind()), 1)

	frame(t, g)
	y := playerY(t, w)

	press(component.Input{Pause: true})
	frame(t, g)
	require.True(t, g.paused)
	for range 10 {
		frame(t, g)
	}
	assert.Equal(t, y, playerY(t, w), "paused run does not move")
	assert.Equal(t, component.StateInGame, g.states.Current())

	press(component.Input{Pause: true})
	frame(t, g)
	require.False(t, g.paused)
	assert.Less(t, playerY(t, w), y, "gravity resumes")

	scoreEnt, ok := ecs.First(w, component.ScoreComponent.Kind())
	require.True(t, ok)
	score, _ := ecs.Get(w, scoreEnt, component.ScoreComponent.Kind())
	score.Value = 7

	// Drop the player onto the floor.
	playerEnt, _ := ecs.First(w, component.PlayerTagComponent.Kind())
	tr, _ := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	tr.Y = g.tuning.Floor.Y
	frame(t, g)

	require.Equal(t, component.StateGameOver, g.states.Current())
	assert.Zero(t, scopedTo(w, component.StateInGame))
	assert.Positive(t, scopedTo(w, component.StateGameOver))
	assert.Empty(t, w.Query(component.PlayerTagComponent.Kind()))
	assert.Equal(t, "Score : 0007", g.gameOverUI.score.Label)
	assert.Equal(t, "Best  : 0007", g.gameOverUI.best.Label)

	press(component.Input{Flap: true, Confirm: true})
	frame(t, g)
	require.Equal(t, component.StateMainMenu, g.states.Current())
	assert.Zero(t, scopedTo(w, component.StateGameOver))
	assert.Positive(t, scopedTo(w, component.StateMainMenu))
}

func TestPauseStopsWingAndMusic(t *testing.T) {
	g, _ := newTestGame(t)
	w := g.world

	sfxEnt, ok := ecs.First(w, component.AudioComponent.Kind())
	require.True(t, ok)
	sfx, _ := ecs.Get(w, sfxEnt, component.AudioComponent.Kind())

	requests := func() []component.MusicRequest {
		var out []component.MusicRequest
		ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(_ ecs.Entity, r *component.MusicRequest) {
			out = append(out, *r)
		})
		return out
	}

	frame(t, g)
	require.Empty(t, requests(), "startup request handled")

	g.setPaused(true)
	assert.Equal(t, []bool{true, false}, sfx.Stop, "wing flagged to stop")
	require.Len(t, requests(), 1)
	assert.Empty(t, requests()[0].Track, "music stopped")

	g.setPaused(true)
	assert.Len(t, requests(), 1, "pausing twice is a no-op")

	g.setPaused(false)
	got := requests()
	require.Len(t, got, 2)
	assert.Equal(t, g.tuning.Music.Track, got[1].Track)
	assert.True(t, got[1].Loop)
}

func TestRunRejectsUnknownProfileMode(t *testing.T) {
	err := run("trace", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown -profile "trace"`)
}
