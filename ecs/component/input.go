package component

// Input stores per-frame input state. Every field is an edge: true only on
// the frame the key went down.
type Input struct {
	Flap    bool
	Confirm bool
	Pause   bool
}

var InputComponent = NewComponent[Input]()
