package component

import "fmt"

type GameState int

const (
	StateMainMenu GameState = iota
	StateInGame
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateInGame:
		return "in_game"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Next returns the only state s may move to.
func (s GameState) Next() GameState {
	switch s {
	case StateMainMenu:
		return StateInGame
	case StateInGame:
		return StateGameOver
	default:
		return StateMainMenu
	}
}

// StateScoped entities are destroyed when State is exited.
type StateScoped struct {
	State GameState
}

var StateScopedComponent = NewComponent[StateScoped]()

// StateRequest is a one-shot request to change the game state. The game loop
// consumes and destroys request entities once per frame.
type StateRequest struct {
	Next GameState
}

var StateRequestComponent = NewComponent[StateRequest]()
