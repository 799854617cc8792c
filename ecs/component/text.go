package component

import "image/color"

// Text is HUD text drawn at a screen-space pixel offset from the top-left.
type Text struct {
	Value  string
	Format string
	Size   float64
	X      float64
	Y      float64
	Color  color.Color
}

var TextComponent = NewComponent[Text]()
