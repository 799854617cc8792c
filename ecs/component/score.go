package component

type Score struct {
	Value uint32
	Timer Timer
}

var ScoreComponent = NewComponent[Score]()

// HighScore survives across runs for the lifetime of the process.
type HighScore struct {
	Last uint32
	Best uint32
}

var HighScoreComponent = NewComponent[HighScore]()
