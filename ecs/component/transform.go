package component

// Transform is a world-space placement. X/Y follow the world convention:
// origin at screen centre, +Y up. Rotation is counter-clockwise in radians.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
