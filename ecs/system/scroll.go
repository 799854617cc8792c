package system

import (
	"log"
	"math/rand/v2"

	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// ScrollSystem moves scrolling entities left and wraps them back to the right.
// Pipes that wrap are re-placed vertically by one offset shared by every pipe
// wrapping in the same frame, so a pair stays aligned.
type ScrollSystem struct {
	Amplitude float64
	Script    *PipeScript
	Rand      func() float64

	scriptFailed bool
}

func NewScrollSystem(amplitude float64, script *PipeScript, rng *rand.Rand) *ScrollSystem {
	s := &ScrollSystem{Amplitude: amplitude, Script: script, Rand: rand.Float64}
	if rng != nil {
		s.Rand = rng.Float64
	}
	return s
}

func (s *ScrollSystem) Update(w *ecs.World) {
	var (
		offset    float64
		haveShift bool
	)
	shift := func() float64 {
		if !haveShift {
			offset = s.pipeOffset(w)
			haveShift = true
		}
		return offset
	}

	ecs.ForEach2(w, component.ScrollComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.Scroll, t *component.Transform) {
		if t.X > sc.WrapAt {
			t.X -= sc.Speed
			return
		}

		t.X = sc.WrapTo
		pipe, ok := ecs.Get(w, e, component.PipeComponent.Kind())
		if !ok {
			return
		}
		base := -pipe.Base
		if pipe.Top {
			base = pipe.Base
		}
		t.Y = base + shift()
	})
}

func (s *ScrollSystem) pipeOffset(w *ecs.World) float64 {
	rnd := 0.0
	if s.Rand != nil {
		rnd = s.Rand()
	}
	if s.Script != nil && !s.scriptFailed {
		v, err := s.Script.Offset(rnd, s.Amplitude, currentScore(w))
		if err == nil {
			return v
		}
		// Log once; the built-in placement takes over until the script is reloaded.
		log.Printf("scroll: %v", err)
		s.scriptFailed = true
	}
	return s.Amplitude * (rnd - 1)
}

// SetScript swaps the placement script, typically after a hot reload.
func (s *ScrollSystem) SetScript(script *PipeScript) {
	s.Script = script
	s.scriptFailed = false
}

func currentScore(w *ecs.World) uint32 {
	e, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		return 0
	}
	score, ok := ecs.Get(w, e, component.ScoreComponent.Kind())
	if !ok {
		return 0
	}
	return score.Value
}
