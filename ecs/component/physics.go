package component

// Velocity is expressed in world units per frame.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Gravity is subtracted from Velocity.Y every frame.
type Gravity struct {
	Accel float64
}

var GravityComponent = NewComponent[Gravity]()

// Tilt turns vertical speed into rotation: clamp(vy*Factor, Min, Max).
type Tilt struct {
	Factor float64
	Min    float64
	Max    float64
}

var TiltComponent = NewComponent[Tilt]()
