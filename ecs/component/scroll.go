package component

// Scroll moves an entity left by Speed each frame and teleports it to WrapTo
// once it reaches WrapAt.
type Scroll struct {
	Speed  float64
	WrapAt float64
	WrapTo float64
}

var ScrollComponent = NewComponent[Scroll]()
