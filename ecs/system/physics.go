package system

import (
	"github.com/milk9111/flappy/common"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// FlapSystem sets the player's vertical speed to its flap impulse when flap
// is pressed and pushes an EventFlap.
type FlapSystem struct{}

func NewFlapSystem() *FlapSystem {
	return &FlapSystem{}
}

func (f *FlapSystem) Update(w *ecs.World) {
	if !CurrentInput(w).Flap {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, player *component.Player, vel *component.Velocity) {
		vel.Y = player.FlapImpulse
		w.Events().Push(ecs.Event{Type: ecs.EventFlap, Data: e})
	})
}

// GravitySystem integrates vy -= g, y += vy once per frame.
type GravitySystem struct{}

func NewGravitySystem() *GravitySystem {
	return &GravitySystem{}
}

func (g *GravitySystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.GravityComponent.Kind(), component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, grav *component.Gravity, vel *component.Velocity, t *component.Transform) {
		vel.Y -= grav.Accel
		t.X += vel.X
		t.Y += vel.Y
	})
}

// RotateSystem tilts the sprite with its vertical speed.
type RotateSystem struct{}

func NewRotateSystem() *RotateSystem {
	return &RotateSystem{}
}

func (r *RotateSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.TiltComponent.Kind(), component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tilt *component.Tilt, vel *component.Velocity, t *component.Transform) {
		t.Rotation = common.Clamp(vel.Y*tilt.Factor, tilt.Min, tilt.Max)
	})
}
