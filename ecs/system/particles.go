package system

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/milk9111/flappy/common"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// FollowSystem pins FollowPlayerY entities to the player's height.
type FollowSystem struct{}

func NewFollowSystem() *FollowSystem {
	return &FollowSystem{}
}

func (f *FollowSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.FollowPlayerYComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, follow *component.FollowPlayerY, t *component.Transform) {
		t.Y = pt.Y + follow.OffsetY
	})
}

// ParticleSystem spawns and integrates emitter particles on the CPU.
type ParticleSystem struct {
	Rand func() float64
}

func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	p := &ParticleSystem{Rand: rand.Float64}
	if rng != nil {
		p.Rand = rng.Float64
	}
	return p
}

func (p *ParticleSystem) Update(w *ecs.World) {
	const dt = common.FrameDelta

	ecs.ForEach2(w, component.ParticleEmitterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, em *component.ParticleEmitter, t *component.Transform) {
		alive := em.Particles[:0]
		for _, pt := range em.Particles {
			pt.Age += dt
			if pt.Age >= pt.Lifetime {
				continue
			}
			pt.VX += em.AccelX * dt
			pt.VY += em.AccelY * dt
			pt.X += pt.VX * dt
			pt.Y += pt.VY * dt
			alive = append(alive, pt)
		}
		em.Particles = alive

		for n := em.Due(dt); n > 0 && len(em.Particles) < em.Capacity; n-- {
			angle := p.Rand() * 2 * math.Pi
			cos, sin := math.Cos(angle), math.Sin(angle)
			em.Particles = append(em.Particles, component.Particle{
				X:        t.X + em.Radius*cos,
				Y:        t.Y + em.Radius*sin,
				VX:       em.Speed * cos,
				VY:       em.Speed * sin,
				Lifetime: em.Lifetime,
			})
		}
	})
}

// ColorAt samples a gradient at normalised age t.
func ColorAt(keys []component.ColorKey, t float64) color.NRGBA {
	if len(keys) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if t <= keys[0].T {
		return keys[0].Color
	}
	for i := 1; i < len(keys); i++ {
		if t > keys[i].T {
			continue
		}
		a, b := keys[i-1], keys[i]
		f := segment(a.T, b.T, t)
		return color.NRGBA{
			R: lerp8(a.Color.R, b.Color.R, f),
			G: lerp8(a.Color.G, b.Color.G, f),
			B: lerp8(a.Color.B, b.Color.B, f),
			A: lerp8(a.Color.A, b.Color.A, f),
		}
	}
	return keys[len(keys)-1].Color
}

// SizeAt samples a size gradient at normalised age t.
func SizeAt(keys []component.SizeKey, t float64) float64 {
	if len(keys) == 0 {
		return 1
	}
	if t <= keys[0].T {
		return keys[0].Size
	}
	for i := 1; i < len(keys); i++ {
		if t > keys[i].T {
			continue
		}
		a, b := keys[i-1], keys[i]
		return common.Lerp(a.Size, b.Size, segment(a.T, b.T, t))
	}
	return keys[len(keys)-1].Size
}

func segment(t0, t1, t float64) float64 {
	if t1 <= t0 {
		return 1
	}
	return (t - t0) / (t1 - t0)
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(common.Lerp(float64(a), float64(b), f)))
}
