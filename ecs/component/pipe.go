package component

// Pipe is one half of a pipe pair. Base is the unshifted distance of the
// pipe centre from the horizon; top pipes sit at +Base, bottom pipes at -Base.
type Pipe struct {
	Top  bool
	Base float64
}

var PipeComponent = NewComponent[Pipe]()
