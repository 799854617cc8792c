package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// PollInput reads this frame's input edges.
type PollInput func() component.Input

type InputSystem struct {
	poll PollInput
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollEbiten}
}

// NewInputSystemWith is used by tests to drive input without a window.
func NewInputSystemWith(poll PollInput) *InputSystem {
	return &InputSystem{poll: poll}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.poll == nil {
		return
	}

	state := i.poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}

func pollEbiten() component.Input {
	flap := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	pause := inpututil.IsKeyJustPressed(ebiten.KeyP)

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			flap = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			pause = true
		}
	}

	return component.Input{
		Flap:    flap,
		Confirm: flap,
		Pause:   pause,
	}
}

// CurrentInput returns the input singleton, or a zero value when there is none.
func CurrentInput(w *ecs.World) component.Input {
	e, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return component.Input{}
	}
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok || input == nil {
		return component.Input{}
	}
	return *input
}
