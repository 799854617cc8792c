package component

type Player struct {
	FlapImpulse float64
	// Width and Height size the player's bounding box.
	Width  float64
	Height float64
}

var PlayerComponent = NewComponent[Player]()
