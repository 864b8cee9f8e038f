package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbeat/components"
	"github.com/pthm-cable/heartbeat/effects"
)

// RainRenderer draws falling hearts over the scene.
type RainRenderer struct {
	width  int32
	height int32
}

// NewRainRenderer creates a new rain renderer.
func NewRainRenderer(width, height int32) *RainRenderer {
	return &RainRenderer{width: width, height: height}
}

// Resize updates screen dimensions.
func (r *RainRenderer) Resize(width, height int32) {
	r.width = width
	r.height = height
}

// Draw renders every live drop.
func (r *RainRenderer) Draw(rain *effects.Rain, tick int32) {
	w, h := float32(r.width), float32(r.height)

	rain.Each(func(d effects.Drop) {
		alpha := d.Fade * 230
		if alpha < 2 {
			return
		}

		x, y := d.X*w, d.Y*h

		cr, cg, cb := d.Glyph.RGB()
		color := rl.Color{R: cr, G: cg, B: cb, A: uint8(alpha)}

		switch d.Glyph {
		case components.GlyphSparkle:
			drawHeart(x, y, d.Size, color)
			glint := rl.Color{R: 255, G: 255, B: 255, A: uint8(alpha * 0.8)}
			rl.DrawCircleV(rl.Vector2{X: x - d.Size*0.2, Y: y - d.Size*0.1}, d.Size*0.08, glint)
		case components.GlyphTwin:
			drawHeart(x-d.Size*0.2, y, d.Size*0.6, color)
			drawHeart(x+d.Size*0.25, y+d.Size*0.15, d.Size*0.5, color)
		case components.GlyphGrowing:
			// Breathes with the tick so it reads as growing
			s := d.Size * (0.85 + 0.15*float32(math.Sin(float64(tick)*0.15+float64(x)*0.01)))
			drawHeart(x, y, s, color)
			rl.DrawCircleLines(int32(x), int32(y), s*0.75, color)
		default:
			drawHeart(x, y, d.Size, color)
		}
	})
}

// drawHeart draws a heart of the given height centred on (x, y):
// two lobes and a downward point.
func drawHeart(x, y, size float32, color rl.Color) {
	lobe := size * 0.28
	top := y - size*0.15

	rl.DrawCircleV(rl.Vector2{X: x - lobe, Y: top}, lobe, color)
	rl.DrawCircleV(rl.Vector2{X: x + lobe, Y: top}, lobe, color)
	rl.DrawTriangle(
		rl.Vector2{X: x - 2*lobe, Y: top + lobe*0.35},
		rl.Vector2{X: x, Y: y + size*0.5},
		rl.Vector2{X: x + 2*lobe, Y: top + lobe*0.35},
		color,
	)
}
