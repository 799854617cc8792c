package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })
}

func TestLoadTuningEmbeddedMatchesDefaults(t *testing.T) {
	useDir(t, t.TempDir())

	got, err := LoadTuning()
	require.NoError(t, err)

	want := DefaultTuning()
	assert.Equal(t, want.Window, got.Window)
	assert.Equal(t, want.Pipes, got.Pipes)
	assert.Equal(t, want.Floor, got.Floor)
	assert.Equal(t, want.Background, got.Background)
	assert.Equal(t, want.Music, got.Music)
	assert.Equal(t, color.NRGBA{R: 255, G: 87, B: 51, A: 255}, got.ClearColor.NRGBA())
}

func TestLoadTuningDiskOverridesAndKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("pipes:\n  offset_amplitude: 35\n"), 0o644))

	got, err := LoadTuning()
	require.NoError(t, err)
	assert.Equal(t, 35.0, got.Pipes.OffsetAmplitude)
	assert.Equal(t, 265.0, got.Pipes.Pos, "fields absent from the file keep their defaults")
	assert.Equal(t, 800, got.Window.Width)
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("window:\n  zoom: 0\nmusic:\n  volume: 2\n"), 0o644))

	got, err := LoadTuning()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zoom")
	assert.Contains(t, err.Error(), "music volume")
	assert.Equal(t, DefaultTuning().Window, got.Window, "a bad file falls back to defaults")
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#FF5733"`, want: color.NRGBA{R: 255, G: 87, B: 51, A: 255}},
		{in: `"FFFF0080"`, want: color.NRGBA{R: 255, G: 255, A: 128}},
		{in: `"#FFF"`, wantErr: true},
		{in: `"#GG0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.NRGBA())
		})
	}

	assert.Equal(t, color.NRGBA{}, YAMLColor{}.NRGBA())
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	require.NoError(t, err)
	assert.Equal(t, "player", spec.Name)

	player, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	require.NoError(t, err)
	assert.Equal(t, PlayerComponentSpec{FlapImpulse: 3, Width: 34, Height: 24}, player)

	sheet, err := DecodeComponentSpec[SpriteSheetComponentSpec](spec.Components["sprite_sheet"])
	require.NoError(t, err)
	assert.Equal(t, 4, sheet.Frames)
	assert.InDelta(t, 0.10, sheet.FrameSeconds, 1e-9)

	empty, err := DecodeComponentSpec[GravityComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestDecodeTrailGradients(t *testing.T) {
	spec, err := LoadEntityBuildSpec("prefabs/trail.yaml")
	require.NoError(t, err)

	em, err := DecodeComponentSpec[ParticleEmitterComponentSpec](spec.Components["particle_emitter"])
	require.NoError(t, err)
	require.Len(t, em.Colors, 4)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, A: 255}, em.Colors[1].Color.NRGBA())
	assert.Equal(t, uint8(0), em.Colors[3].Color.NRGBA().A)
	require.Len(t, em.Sizes, 4)
	assert.Equal(t, 5.0, em.Sizes[1].Size)
}

func TestEveryEmbeddedPrefabParses(t *testing.T) {
	entries, err := PrefabsFS.ReadDir(".")
	require.NoError(t, err)
	for _, e := range entries {
		if e.Name() == TuningFile {
			continue
		}
		spec, err := LoadEntityBuildSpec(e.Name())
		require.NoError(t, err, e.Name())
		assert.NotEmpty(t, spec.Components, e.Name())
	}
}

func TestLoadScriptPaths(t *testing.T) {
	useDir(t, t.TempDir())
	for _, name := range []string{"pipe_offset.tengo", "scripts/pipe_offset.tengo", "prefabs/scripts/pipe_offset.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "offset", name)
	}
}

func TestFileKinds(t *testing.T) {
	assert.True(t, IsSpecFile("prefabs/game.yaml"))
	assert.True(t, IsSpecFile("x.YML"))
	assert.False(t, IsSpecFile("pipe_offset.tengo"))
	assert.True(t, IsScriptFile("prefabs/scripts/pipe_offset.tengo"))
	assert.False(t, IsScriptFile("game.yaml~"))
}
