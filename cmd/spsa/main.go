// Command spsa previews a prefab's sprite sheet animation in a small window.
package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flappy/assets"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/ecs/entity"
	"github.com/milk9111/flappy/ecs/system"
)

const previewSize = 512

type previewGame struct {
	world  *ecs.World
	update *ecs.Scheduler
	render *ecs.Scheduler
	paused bool
}

func newPreviewGame(prefab string, zoom float64) (*previewGame, error) {
	w := ecs.NewWorld()
	e, err := entity.BuildEntity(w, prefab)
	if err != nil {
		return nil, err
	}
	if err := entity.SetEntityTransform(w, e, 0, 0); err != nil {
		return nil, err
	}
	if !ecs.Has(w, e, component.SpriteSheetComponent.Kind()) {
		log.Printf("spsa: %s has no sprite_sheet; showing a still sprite", prefab)
	}

	cam := system.Camera{Width: previewSize, Height: previewSize, Zoom: zoom}
	return &previewGame{
		world:  w,
		update: ecs.NewScheduler(system.NewAnimationSystem()),
		render: ecs.NewScheduler(system.NewRenderSystem(cam, assets.HUDFontSource)),
	}, nil
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.update.Update(g.world)
	}
	g.world.EndFrame()
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	g.render.Draw(g.world, screen)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func main() {
	prefab := flag.String("prefab", "player.yaml", "prefab to preview")
	zoom := flag.Float64("zoom", 4, "pixels per world unit")
	flag.Parse()

	g, err := newPreviewGame(*prefab, *zoom)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(previewSize, previewSize)
	ebiten.SetWindowTitle("Sprite Sheet Preview: " + *prefab)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
