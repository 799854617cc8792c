package component

import "image/color"

type Particle struct {
	X, Y     float64
	VX, VY   float64
	Age      float64
	Lifetime float64
}

// ColorKey is a gradient stop; T is the normalised particle age.
type ColorKey struct {
	T     float64
	Color color.NRGBA
}

type SizeKey struct {
	T    float64
	Size float64
}

// ParticleEmitter spawns particles on a small circle around its Transform
// and integrates them on the CPU. Particle positions are in world space.
type ParticleEmitter struct {
	Rate     float64
	Capacity int
	Radius   float64
	Speed    float64
	AccelX   float64
	AccelY   float64
	Lifetime float64
	Colors   []ColorKey
	Sizes    []SizeKey
	Enabled  bool

	Particles []Particle
	carry     float64
}

// Due adds dt worth of emission and returns how many particles to spawn now.
func (p *ParticleEmitter) Due(dt float64) int {
	if !p.Enabled || p.Rate <= 0 || dt <= 0 {
		return 0
	}
	p.carry += p.Rate * dt
	n := int(p.carry)
	p.carry -= float64(n)
	return n
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()

// FollowPlayerY pins an entity's Y to the player's.
type FollowPlayerY struct {
	OffsetY float64
}

var FollowPlayerYComponent = NewComponent[FollowPlayerY]()
