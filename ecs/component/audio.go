package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named one-shot players. Systems set Play[i] or Stop[i]; the
// audio system starts or pauses the player and clears the flag.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request flags the named sound for playback and reports whether it exists.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

// Halt flags the named sound to be stopped and reports whether it exists.
func (a *Audio) Halt(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Stop) {
			a.Stop[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
