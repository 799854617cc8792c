package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheet cycles through Frames equally sized cells laid out on one row.
type SpriteSheet struct {
	Sheet  *ebiten.Image
	FrameW int
	FrameH int
	Frames int
	Index  int
	Timer  Timer
}

// FrameRect returns the source rectangle of frame i.
func (s *SpriteSheet) FrameRect(i int) image.Rectangle {
	x := i * s.FrameW
	return image.Rect(x, 0, x+s.FrameW, s.FrameH)
}

var SpriteSheetComponent = NewComponent[SpriteSheet]()
