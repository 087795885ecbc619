//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"wolfsheep/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var seriesColors = map[string]color.RGBA{
	"Sheep":  {R: 72, G: 61, B: 139, A: 255},
	"Wolves": {R: 204, G: 0, B: 0, A: 255},
}

// Overlay plots the recent population history over the simulation view.
// Press G to toggle it.
type Overlay struct {
	sim     core.Sim
	scale   int
	visible bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, visible: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.visible = !o.visible
	}
}

// Draw renders the plot in the bottom strip of the view.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.visible {
		return
	}
	provider, ok := o.sim.(core.HistoryProvider)
	if !ok {
		return
	}
	history := provider.History()
	size := o.sim.Size()
	viewW := float64(size.W * o.scale)
	viewH := float64(size.H * o.scale)
	if viewW <= 0 || viewH <= 0 {
		return
	}

	const margin = 8.0
	plotH := math.Max(viewH/4, 40)
	plotW := viewW - 2*margin
	originX := margin
	originY := viewH - margin - plotH

	o.fillRect(screen, originX-4, originY-4, plotW+8, plotH+8, color.RGBA{A: 150})

	peak := seriesPeak(history)
	face := basicfont.Face7x13
	labelY := int(originY) + 10
	for _, name := range seriesNames(history) {
		col, ok := seriesColors[name]
		if !ok {
			col = color.RGBA{R: 220, G: 220, B: 220, A: 255}
		}
		pts := sparklinePoints(history[name], peak, plotW, plotH)
		for i := 1; i < len(pts); i++ {
			o.drawLine(screen, originX+pts[i-1].X, originY+pts[i-1].Y, originX+pts[i].X, originY+pts[i].Y, 1.5, col)
		}
		if n := len(history[name]); n > 0 {
			label := fmt.Sprintf("%s %d", name, history[name][n-1])
			text.Draw(screen, label, face, int(originX)+2, labelY, col)
			labelY += 14
		}
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
