package component

// Collidable is an axis-aligned box centred on the entity's Transform that
// ends the run when the player overlaps it.
type Collidable struct {
	Width  float64
	Height float64
}

var CollidableComponent = NewComponent[Collidable]()
