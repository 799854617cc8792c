package entity

import (
	"errors"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAssets records requested paths and hands back nil images and players.
func stubAssets(t *testing.T) *[]string {
	t.Helper()
	var loaded []string
	old := Assets
	Assets = Loader{
		Image: func(path string) (*ebiten.Image, error) {
			loaded = append(loaded, path)
			return nil, nil
		},
		Audio: func(path string) (*audio.Player, error) {
			loaded = append(loaded, path)
			return nil, nil
		},
	}
	t.Cleanup(func() { Assets = old })
	return &loaded
}

func TestBuildPlayer(t *testing.T) {
	loaded := stubAssets(t)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "player.yaml")
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Player{FlapImpulse: 3, Width: 34, Height: 24}, *player)

	grav, _ := ecs.Get(w, e, component.GravityComponent.Kind())
	assert.Equal(t, 0.05, grav.Accel)

	sheet, ok := ecs.Get(w, e, component.SpriteSheetComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 4, sheet.Frames)
	assert.True(t, sheet.Timer.Repeating)

	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	assert.True(t, sprite.UseSource)
	assert.Equal(t, image.Rect(0, 0, 34, 24), sprite.Source)

	assert.Equal(t, []string{"flappy.png"}, *loaded)
}

func TestBuildTrailSortsGradients(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()

	spec := prefabs.EntityBuildSpec{Components: map[string]any{
		"transform": map[string]any{},
		"particle_emitter": map[string]any{
			"rate":     10,
			"capacity": 8,
			"lifetime": 1,
			"sizes": []any{
				map[string]any{"t": 1.0, "size": 0},
				map[string]any{"t": 0.0, "size": 2},
			},
		},
	}}
	e, err := BuildEntityFromSpec(w, "inline", spec)
	require.NoError(t, err)

	em, _ := ecs.Get(w, e, component.ParticleEmitterComponent.Kind())
	require.Len(t, em.Sizes, 2)
	assert.Equal(t, 0.0, em.Sizes[0].T)
	assert.True(t, em.Enabled)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 1.0, tr.ScaleX, "zero scale defaults to 1")
}

func TestBuildEntityErrorsDestroyHalfBuiltEntity(t *testing.T) {
	stubAssets(t)

	cases := []struct {
		name string
		spec prefabs.EntityBuildSpec
	}{
		{"unknown_component", prefabs.EntityBuildSpec{Components: map[string]any{"transform": map[string]any{}, "wings": map[string]any{}}}},
		{"inverted_scroll", prefabs.EntityBuildSpec{Components: map[string]any{"scroll": map[string]any{"wrap_at": 10, "wrap_to": -10}}}},
		{"bad_tilt", prefabs.EntityBuildSpec{Components: map[string]any{"tilt": map[string]any{"min": 1, "max": -1}}}},
		{"empty_collider", prefabs.EntityBuildSpec{Components: map[string]any{"collidable": map[string]any{}}}},
		{"zero_score_tick", prefabs.EntityBuildSpec{Components: map[string]any{"score": map[string]any{}}}},
		{"no_components", prefabs.EntityBuildSpec{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntityFromSpec(w, c.name, c.spec)
			require.Error(t, err)
			assert.Zero(t, w.Len(), "no entity survives a failed build")
		})
	}
}

func TestBuildEntityPropagatesAssetErrors(t *testing.T) {
	stubAssets(t)
	missing := errors.New("missing")
	Assets.Image = func(string) (*ebiten.Image, error) { return nil, missing }

	w := ecs.NewWorld()
	_, err := BuildEntity(w, "pipe.yaml")
	require.ErrorIs(t, err, missing)
	assert.Zero(t, w.Len())
}

func TestSpawnPipesLaysOutPairs(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()
	layout := prefabs.DefaultTuning().Pipes

	ents, err := SpawnPipes(w, layout, component.StateInGame)
	require.NoError(t, err)
	require.Len(t, ents, 8)

	tops := 0
	for _, e := range ents {
		pipe, _ := ecs.Get(w, e, component.PipeComponent.Kind())
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		scope, _ := ecs.Get(w, e, component.StateScopedComponent.Kind())

		assert.Equal(t, component.StateInGame, scope.State)
		assert.Equal(t, 265.0, pipe.Base)
		assert.Equal(t, pipe.Top, sprite.FlipY)
		if pipe.Top {
			tops++
			assert.Equal(t, 265.0, tr.Y)
		} else {
			assert.Equal(t, -265.0, tr.Y)
		}
		assert.Contains(t, []float64{400, 600, 800, 1000}, tr.X)
	}
	assert.Equal(t, 4, tops)
}

func TestSpawnTilesAndScenery(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()
	tuning := prefabs.DefaultTuning()

	floor, err := SpawnFloor(w, tuning.Floor, component.StateMainMenu)
	require.NoError(t, err)
	assert.Len(t, floor, 10)
	tr, _ := ecs.Get(w, floor[3], component.TransformComponent.Kind())
	assert.Equal(t, 3*336.0, tr.X)
	assert.Equal(t, -200.0, tr.Y)
	assert.True(t, ecs.Has(w, floor[0], component.CollidableComponent.Kind()))

	bg, err := SpawnBackground(w, tuning.Background, component.StateMainMenu)
	require.NoError(t, err)
	assert.Len(t, bg, 6)
	assert.False(t, ecs.Has(w, bg[0], component.CollidableComponent.Kind()), "the background never collides")
}

func TestSpawnPlayerKeepsOnePlayer(t *testing.T) {
	stubAssets(t)
	w := ecs.NewWorld()

	first, err := SpawnPlayer(w, prefabs.PointSpec{})
	require.NoError(t, err)
	second, err := SpawnPlayer(w, prefabs.PointSpec{X: 50})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, w.Query(component.PlayerTagComponent.Kind()), 1)
}

func TestSingletonsAndHUD(t *testing.T) {
	loaded := stubAssets(t)
	w := ecs.NewWorld()

	in1, err := NewInput(w)
	require.NoError(t, err)
	in2, err := NewInput(w)
	require.NoError(t, err)
	assert.Equal(t, in1, in2)

	sfx, err := NewSoundEffects(w)
	require.NoError(t, err)
	a, _ := ecs.Get(w, sfx, component.AudioComponent.Kind())
	assert.Equal(t, []string{"wing", "die"}, a.Names)
	assert.True(t, a.Request("die"))
	assert.False(t, a.Request("missing"))

	mp, err := NewMusicPlayer(w)
	require.NoError(t, err)
	music, _ := ecs.Get(w, mp, component.MusicPlayerComponent.Kind())
	assert.Equal(t, 0.75, music.TrackVolumes["music"])
	assert.Contains(t, *loaded, "music.wav")

	score, err := SpawnScore(w)
	require.NoError(t, err)
	txt, _ := ecs.Get(w, score, component.TextComponent.Kind())
	assert.Equal(t, "Score : %04d", txt.Format)
	assert.True(t, ecs.Has(w, score, component.ScreenSpaceComponent.Kind()))

	trail, err := SpawnTrail(w, prefabs.PointSpec{})
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, trail, component.FollowPlayerYComponent.Kind()))
}
