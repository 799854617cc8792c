package system

import (
	"github.com/milk9111/flappy/common"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.SpriteSheetComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.SpriteSheet, sprite *component.Sprite) {
		if anim.Frames <= 0 {
			return
		}

		// One frame per finish, so a long hitch does not skip the sheet ahead.
		if anim.Timer.Tick(common.FrameDelta) == 0 {
			return
		}
		anim.Index = (anim.Index + 1) % anim.Frames

		sprite.Image = anim.Sheet
		sprite.UseSource = true
		sprite.Source = anim.FrameRect(anim.Index)
	})
}
