package main

import (
	"image/color"

	"github.com/milk9111/flappy/common"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	uiTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	uiPanelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	uiButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
)

// uiFace is the built-in basic font, so the panels need no theme fonts.
func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func newUIButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	btnImg := imageui.NewNineSliceColor(uiButtonColor)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: uiTextColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func newUIText(label string, face *ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, uiTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// newUIPanel is a vertical panel anchored in the root container.
func newUIPanel(minW, minH int, vertical widget.AnchorLayoutPosition) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(uiPanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: vertical}),
		),
	)
}

// NewPauseUI builds the centred pause menu with Resume and Quit buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()

	panel := newUIPanel(common.BaseWidth/2, common.BaseHeight/2, widget.AnchorLayoutPositionCenter)
	panel.AddChild(newUIText("Paused", face))
	panel.AddChild(newUIButton("Resume", face, func() { g.setPaused(false) }))
	panel.AddChild(newUIButton("Quit", face, func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
