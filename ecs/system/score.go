package system

import (
	"fmt"

	"github.com/milk9111/flappy/common"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// ScoreSystem adds a point every time the score timer finishes.
type ScoreSystem struct{}

func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

func (s *ScoreSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.ScoreComponent.Kind(), func(_ ecs.Entity, score *component.Score) {
		score.Value += uint32(score.Timer.Tick(common.FrameDelta))
	})
}

// ScoreTextSystem formats the score into its HUD text.
type ScoreTextSystem struct{}

func NewScoreTextSystem() *ScoreTextSystem {
	return &ScoreTextSystem{}
}

func (s *ScoreTextSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.ScoreComponent.Kind(), component.TextComponent.Kind(), func(_ ecs.Entity, score *component.Score, text *component.Text) {
		format := text.Format
		if format == "" {
			format = "%d"
		}
		text.Value = fmt.Sprintf(format, score.Value)
	})
}
