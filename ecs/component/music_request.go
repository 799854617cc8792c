package component

// MusicRequest is a one-shot request for global music playback. An empty
// Track stops the current song.
type MusicRequest struct {
	Track  string
	Volume float64
	Loop   bool
}

var MusicRequestComponent = NewComponent[MusicRequest]()
