package game

import "image/color"

// Surface is anything the heart can be drawn on. Implementations keep
// their contents between frames so Fade leaves trails.
type Surface interface {
	// Size returns the current drawable size in pixels. It is read every frame.
	Size() (w, h int)

	// Fade paints c over the whole surface using c.A as opacity.
	Fade(c color.RGBA)

	// BeginAdditive and EndAdditive bracket draws whose colours add onto
	// what is already there.
	BeginAdditive()
	EndAdditive()

	// DrawCircle fills a circle. c is not premultiplied.
	DrawCircle(x, y, r float64, c color.RGBA)
}
