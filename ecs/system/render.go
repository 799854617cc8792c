package system

import (
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// Camera maps world space (origin at the screen centre, +Y up) to screen
// pixels.
type Camera struct {
	Width  float64
	Height float64
	Zoom   float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

func (c Camera) WorldToScreen(x, y float64) (float64, float64) {
	z := c.zoom()
	return c.Width/2 + x*z, c.Height/2 - y*z
}

type RenderSystem struct {
	Camera Camera
	// Font is resolved lazily so tests never touch it.
	Font func() (*text.GoTextFaceSource, error)

	fontSource *text.GoTextFaceSource
	fontFailed bool
	faces      map[float64]*text.GoTextFace
}

func NewRenderSystem(cam Camera, font func() (*text.GoTextFaceSource, error)) *RenderSystem {
	return &RenderSystem{Camera: cam, Font: font, faces: map[float64]*text.GoTextFace{}}
}

func (r *RenderSystem) Update(*ecs.World) {}

// DrawOrder returns world-space drawables sorted back to front: by render
// layer, then by slot within a layer.
func DrawOrder(w *ecs.World) []ecs.Entity {
	var ents []ecs.Entity
	seen := map[ecs.Entity]bool{}
	for _, e := range w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind()) {
		ents = append(ents, e)
		seen[e] = true
	}
	for _, e := range w.Query(component.TransformComponent.Kind(), component.ParticleEmitterComponent.Kind()) {
		if !seen[e] {
			ents = append(ents, e)
		}
	}

	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(ents, func(i, j int) bool {
		li, lj := layer(ents[i]), layer(ents[j])
		if li != lj {
			return li < lj
		}
		return ents[i].Slot() < ents[j].Slot()
	})
	return ents
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}

	for _, e := range DrawOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			r.drawSprite(screen, t, s)
		}
		if em, ok := ecs.Get(w, e, component.ParticleEmitterComponent.Kind()); ok {
			r.drawParticles(screen, em)
		}
	}

	if Debug {
		r.drawColliders(w, screen)
	}

	ecs.ForEach2(w, component.TextComponent.Kind(), component.ScreenSpaceComponent.Kind(), func(_ ecs.Entity, txt *component.Text, _ *component.ScreenSpace) {
		r.drawText(screen, txt)
	})
}

func (r *RenderSystem) drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite) {
	if s.Image == nil {
		return
	}

	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}
	b := img.Bounds()

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}
	if s.FlipY {
		sy = -sy
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(sx, sy)
	// Screen Y points down, so a counter-clockwise world rotation is negated.
	op.GeoM.Rotate(-t.Rotation)
	zoom := r.Camera.zoom()
	op.GeoM.Scale(zoom, zoom)
	x, y := r.Camera.WorldToScreen(t.X, t.Y)
	op.GeoM.Translate(x, y)

	screen.DrawImage(img, op)
}

func (r *RenderSystem) drawParticles(screen *ebiten.Image, em *component.ParticleEmitter) {
	zoom := r.Camera.zoom()
	for _, p := range em.Particles {
		age := 0.0
		if p.Lifetime > 0 {
			age = p.Age / p.Lifetime
		}
		size := SizeAt(em.Sizes, age) * zoom
		if size <= 0 {
			continue
		}
		c := ColorAt(em.Colors, age)
		if c.A == 0 {
			continue
		}
		x, y := r.Camera.WorldToScreen(p.X, p.Y)
		vector.DrawFilledRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), c, false)
	}
}

func (r *RenderSystem) drawColliders(w *ecs.World, screen *ebiten.Image) {
	zoom := r.Camera.zoom()
	outline := func(x, y, width, height float64, c color.Color) {
		sx, sy := r.Camera.WorldToScreen(x-width/2, y+height/2)
		vector.StrokeRect(screen, float32(sx), float32(sy), float32(width*zoom), float32(height*zoom), 1, c, false)
	}
	ecs.ForEach2(w, component.CollidableComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, col *component.Collidable, t *component.Transform) {
		outline(t.X, t.Y, col.Width, col.Height, color.RGBA{R: 255, A: 255})
	})
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform) {
		outline(t.X, t.Y, p.Width, p.Height, color.RGBA{G: 255, A: 255})
	})
}

func (r *RenderSystem) drawText(screen *ebiten.Image, txt *component.Text) {
	if txt.Value == "" {
		return
	}
	face := r.face(txt.Size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(txt.X, txt.Y)
	if txt.Color != nil {
		op.ColorScale.ScaleWithColor(txt.Color)
	}
	text.Draw(screen, txt.Value, face, op)
}

func (r *RenderSystem) face(size float64) *text.GoTextFace {
	if r.fontSource == nil {
		if r.fontFailed || r.Font == nil {
			return nil
		}
		src, err := r.Font()
		if err != nil {
			log.Printf("render: load font: %v", err)
			r.fontFailed = true
			return nil
		}
		r.fontSource = src
	}
	if size <= 0 {
		size = 16
	}
	if r.faces == nil {
		r.faces = map[float64]*text.GoTextFace{}
	}
	f, ok := r.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: r.fontSource, Size: size}
		r.faces[size] = f
	}
	return f
}
