package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// TPS is Ebitengine's default tick rate; systems step by FrameDelta.
	TPS        = 60
	FrameDelta = 1.0 / TPS
)

// Render layers, back to front.
const (
	LayerBackground = 1
	LayerPipe       = 3
	LayerGameOver   = 3
	LayerFloor      = 4
	LayerTrail      = 4
	LayerPlayer     = 5
	LayerMenu       = 6
)
