package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/flappy/assets"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/prefabs"
)

// Loader resolves asset paths named in prefabs.
type Loader struct {
	Image func(path string) (*ebiten.Image, error)
	Audio func(path string) (*audio.Player, error)
}

// Assets is the loader used by BuildEntity. Tests swap it for one that does
// not touch the GPU or the audio device.
var Assets = Loader{
	Image: assets.LoadImage,
	Audio: assets.LoadAudioPlayer,
}

type buildContext struct {
	PrefabPath string
	Loader     Loader
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"floor_tag":        addFloorTag,
	"background_tag":   addBackgroundTag,
	"menu_tag":         addMenuTag,
	"game_over_tag":    addGameOverTag,
	"player":           addPlayer,
	"pipe":             addPipe,
	"input":            addInput,
	"transform":        addTransform,
	"sprite":           addSprite,
	"sprite_sheet":     addSpriteSheet,
	"render_layer":     addRenderLayer,
	"screen_space":     addScreenSpace,
	"velocity":         addVelocity,
	"gravity":          addGravity,
	"tilt":             addTilt,
	"collidable":       addCollidable,
	"scroll":           addScroll,
	"score":            addScore,
	"high_score":       addHighScore,
	"text":             addText,
	"particle_emitter": addParticleEmitter,
	"follow_player_y":  addFollowPlayerY,
	"audio":            addAudio,
	"music_player":     addMusicPlayer,
}

// sprite must precede sprite_sheet, which fills in the sprite's image.
var componentBuildOrder = []string{
	"player_tag",
	"floor_tag",
	"background_tag",
	"menu_tag",
	"game_over_tag",
	"player",
	"pipe",
	"input",
	"transform",
	"sprite",
	"sprite_sheet",
	"render_layer",
	"screen_space",
	"velocity",
	"gravity",
	"tilt",
	"collidable",
	"scroll",
	"score",
	"high_score",
	"text",
	"particle_emitter",
	"follow_player_y",
	"audio",
	"music_player",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec builds an entity from an already decoded prefab. On any
// component error the half-built entity is destroyed.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Loader: Assets}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string, raw any) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		return nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := build(name, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
		delete(remaining, name)
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name, remaining[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addFloorTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.FloorTagComponent.Kind(), &component.FloorTag{})
}

func addBackgroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{})
}

func addMenuTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MenuTagComponent.Kind(), &component.MenuTag{})
}

func addGameOverTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GameOverTagComponent.Kind(), &component.GameOverTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addScreenSpace(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{})
}

func addHighScore(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HighScoreComponent.Kind(), &component.HighScore{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("player size %vx%v must be positive", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		FlapImpulse: spec.FlapImpulse,
		Width:       spec.Width,
		Height:      spec.Height,
	})
}

func addPipe(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PipeComponent.Kind(), &component.Pipe{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := ctx.Loader.Image(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}
	sprite.FlipY = spec.FlipY

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type spriteSheetSpec = prefabs.SpriteSheetComponentSpec

func addSpriteSheet(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSheetSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite sheet spec: %w", err)
	}
	if spec.Frames <= 0 || spec.FrameW <= 0 || spec.FrameH <= 0 {
		return fmt.Errorf("sprite sheet needs positive frames and frame size")
	}
	sheet, err := ctx.Loader.Image(spec.Image)
	if err != nil {
		return fmt.Errorf("load sprite sheet %q: %w", spec.Image, err)
	}

	anim := &component.SpriteSheet{
		Sheet:  sheet,
		FrameW: spec.FrameW,
		FrameH: spec.FrameH,
		Frames: spec.Frames,
		Timer:  component.NewTimer(spec.FrameSeconds, true),
	}

	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		sprite = &component.Sprite{}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
			return err
		}
	}
	sprite.Image = sheet
	sprite.UseSource = true
	sprite.Source = anim.FrameRect(0)

	return ecs.Add(w, e, component.SpriteSheetComponent.Kind(), anim)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: spec.X, Y: spec.Y})
}

type gravitySpec = prefabs.GravityComponentSpec

func addGravity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{Accel: spec.Accel})
}

type tiltSpec = prefabs.TiltComponentSpec

func addTilt(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[tiltSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tilt spec: %w", err)
	}
	if spec.Min > spec.Max {
		return fmt.Errorf("tilt min %v exceeds max %v", spec.Min, spec.Max)
	}
	return ecs.Add(w, e, component.TiltComponent.Kind(), &component.Tilt{
		Factor: spec.Factor,
		Min:    spec.Min,
		Max:    spec.Max,
	})
}

type collidableSpec = prefabs.CollidableComponentSpec

func addCollidable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collidableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collidable spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collidable size %vx%v must be positive", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.CollidableComponent.Kind(), &component.Collidable{
		Width:  spec.Width,
		Height: spec.Height,
	})
}

type scrollSpec = prefabs.ScrollComponentSpec

func addScroll(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scrollSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scroll spec: %w", err)
	}
	if spec.WrapAt >= spec.WrapTo {
		return fmt.Errorf("scroll wrap_at %v must be left of wrap_to %v", spec.WrapAt, spec.WrapTo)
	}
	return ecs.Add(w, e, component.ScrollComponent.Kind(), &component.Scroll{
		Speed:  spec.Speed,
		WrapAt: spec.WrapAt,
		WrapTo: spec.WrapTo,
	})
}

type scoreSpec = prefabs.ScoreComponentSpec

func addScore(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scoreSpec](raw)
	if err != nil {
		return fmt.Errorf("decode score spec: %w", err)
	}
	if spec.TickSeconds <= 0 {
		return fmt.Errorf("score tick_seconds %v must be positive", spec.TickSeconds)
	}
	return ecs.Add(w, e, component.ScoreComponent.Kind(), &component.Score{
		Timer: component.NewTimer(spec.TickSeconds, true),
	})
}

type textSpec = prefabs.TextComponentSpec

func addText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[textSpec](raw)
	if err != nil {
		return fmt.Errorf("decode text spec: %w", err)
	}
	var c color.Color = color.White
	if spec.Color.Color != nil {
		c = spec.Color.Color
	}
	return ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{
		Format: spec.Format,
		Size:   spec.Size,
		X:      spec.X,
		Y:      spec.Y,
		Color:  c,
	})
}

type particleEmitterSpec = prefabs.ParticleEmitterComponentSpec

func addParticleEmitter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[particleEmitterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode particle emitter spec: %w", err)
	}
	if spec.Lifetime <= 0 {
		return fmt.Errorf("particle lifetime %v must be positive", spec.Lifetime)
	}
	if spec.Capacity <= 0 {
		return fmt.Errorf("particle capacity %d must be positive", spec.Capacity)
	}

	colors := make([]component.ColorKey, 0, len(spec.Colors))
	for _, k := range spec.Colors {
		colors = append(colors, component.ColorKey{T: k.T, Color: k.Color.NRGBA()})
	}
	sort.SliceStable(colors, func(i, j int) bool { return colors[i].T < colors[j].T })

	sizes := make([]component.SizeKey, 0, len(spec.Sizes))
	for _, k := range spec.Sizes {
		sizes = append(sizes, component.SizeKey{T: k.T, Size: k.Size})
	}
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].T < sizes[j].T })

	return ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{
		Rate:     spec.Rate,
		Capacity: spec.Capacity,
		Radius:   spec.Radius,
		Speed:    spec.Speed,
		AccelX:   spec.AccelX,
		AccelY:   spec.AccelY,
		Lifetime: spec.Lifetime,
		Colors:   colors,
		Sizes:    sizes,
		Enabled:  true,
	})
}

type followPlayerYSpec = prefabs.FollowPlayerYComponentSpec

func addFollowPlayerY(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[followPlayerYSpec](raw)
	if err != nil {
		return fmt.Errorf("decode follow_player_y spec: %w", err)
	}
	return ecs.Add(w, e, component.FollowPlayerYComponent.Kind(), &component.FollowPlayerY{OffsetY: spec.OffsetY})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	specs, err := prefabs.DecodeComponentSpec[[]audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(specs) == 0 {
		return nil
	}

	comp := &component.Audio{
		Names:   make([]string, 0, len(specs)),
		Players: make([]*audio.Player, 0, len(specs)),
		Volume:  make([]float64, 0, len(specs)),
		Play:    make([]bool, len(specs)),
		Stop:    make([]bool, len(specs)),
	}
	for _, s := range specs {
		player, err := ctx.Loader.Audio(s.File)
		if err != nil {
			return fmt.Errorf("load audio %q: %w", s.File, err)
		}
		vol := s.Volume
		if vol <= 0 {
			vol = 1
		}
		comp.Names = append(comp.Names, s.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, vol)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

type musicPlayerSpec = prefabs.MusicPlayerComponentSpec

func addMusicPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[musicPlayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode music player spec: %w", err)
	}

	mp := &component.MusicPlayer{
		Players:      make(map[string]*audio.Player, len(spec.Tracks)),
		TrackVolumes: make(map[string]float64, len(spec.Tracks)),
	}
	for _, track := range spec.Tracks {
		player, err := ctx.Loader.Audio(track.File)
		if err != nil {
			return fmt.Errorf("load track %q: %w", track.File, err)
		}
		mp.Players[track.Name] = player
		mp.TrackVolumes[track.Name] = track.Volume
	}
	return ecs.Add(w, e, component.MusicPlayerComponent.Kind(), mp)
}
