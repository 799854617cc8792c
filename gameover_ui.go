package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/flappy/common"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/ecs/system"
)

// gameOverUI shows the final and best score under the game-over banner.
type gameOverUI struct {
	ui    *ebitenui.UI
	score *widget.Text
	best  *widget.Text
}

func newGameOverUI(g *Game) *gameOverUI {
	face := uiFace()
	ui := &gameOverUI{
		score: newUIText("", face),
		best:  newUIText("", face),
	}

	panel := newUIPanel(common.BaseWidth/3, 0, widget.AnchorLayoutPositionEnd)
	panel.AddChild(ui.score)
	panel.AddChild(ui.best)
	panel.AddChild(newUIButton("Menu", face, func() {
		system.RequestState(g.world, component.StateMainMenu)
	}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	ui.ui = &ebitenui.UI{Container: root}
	return ui
}

func (u *gameOverUI) refresh(w *ecs.World) {
	var last, best uint32
	if e, ok := ecs.First(w, component.HighScoreComponent.Kind()); ok {
		if hs, ok := ecs.Get(w, e, component.HighScoreComponent.Kind()); ok {
			last, best = hs.Last, hs.Best
		}
	}
	u.score.Label = fmt.Sprintf("Score : %04d", last)
	u.best.Label = fmt.Sprintf("Best  : %04d", best)
}
