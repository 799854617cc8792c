package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is drawn centred on its Transform.
type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	FlipY     bool
}

var SpriteComponent = NewComponent[Sprite]()
