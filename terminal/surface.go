// Package terminal runs the heart inside a terminal with tcell. Each cell
// stands for a block of virtual pixels, so the heart keeps its proportions
// whatever the terminal size.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Shades ordered from dark to bright.
const ramp = " .:-=+*#%@"

// minVirtualHeight is the smallest virtual viewport height that fits the
// default heart with its pulse and perspective.
const minVirtualHeight = 640

// DefaultGain amplifies particle coverage; a cell is hundreds of virtual
// pixels and a particle only a few.
const DefaultGain = 24

// Surface is a cell-resolution drawing buffer. It implements game.Surface.
type Surface struct {
	cols, rows   int
	cellW, cellH int

	// Gain multiplies the area a circle covers in its cell
	Gain float64

	// Linear RGB in [0, 255] per cell
	buf      []float64
	additive bool
}

// NewSurface creates a surface for a cols×rows terminal.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{Gain: DefaultGain}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid. Cell size is picked so the virtual viewport
// is at least minVirtualHeight tall; cells are twice as tall as wide.
func (s *Surface) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == s.cols && rows == s.rows && s.buf != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.cellH = max(2, (minVirtualHeight+rows-1)/rows)
	s.cellW = max(1, s.cellH/2)
	s.buf = make([]float64, cols*rows*3)
}

// Grid returns the terminal dimensions in cells.
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// CellSize returns the virtual pixel size of one cell.
func (s *Surface) CellSize() (w, h int) {
	return s.cellW, s.cellH
}

// Size returns the virtual viewport in pixels.
func (s *Surface) Size() (int, int) {
	return s.cols * s.cellW, s.rows * s.cellH
}

// Fade blends c over every cell using c.A as opacity.
func (s *Surface) Fade(c color.RGBA) {
	k := float64(c.A) / 255
	cr, cg, cb := float64(c.R)*k, float64(c.G)*k, float64(c.B)*k
	for i := 0; i < len(s.buf); i += 3 {
		s.buf[i] = s.buf[i]*(1-k) + cr
		s.buf[i+1] = s.buf[i+1]*(1-k) + cg
		s.buf[i+2] = s.buf[i+2]*(1-k) + cb
	}
}

// BeginAdditive switches DrawCircle to additive blending.
func (s *Surface) BeginAdditive() {
	s.additive = true
}

// EndAdditive switches DrawCircle back to alpha blending.
func (s *Surface) EndAdditive() {
	s.additive = false
}

// DrawCircle deposits a circle into the cell under its centre, weighted by
// how much of the cell it covers.
func (s *Surface) DrawCircle(x, y, r float64, c color.RGBA) {
	if r <= 0 || c.A == 0 || math.IsNaN(x+y+r) || x < 0 || y < 0 {
		return
	}
	cx, cy := int(x)/s.cellW, int(y)/s.cellH
	if cx >= s.cols || cy >= s.rows {
		return
	}

	cover := math.Min(1, s.Gain*math.Pi*r*r/float64(s.cellW*s.cellH))
	k := cover * float64(c.A) / 255
	i := (cy*s.cols + cx) * 3
	px := s.buf[i : i+3 : i+3]
	if s.additive {
		px[0] = math.Min(255, px[0]+float64(c.R)*k)
		px[1] = math.Min(255, px[1]+float64(c.G)*k)
		px[2] = math.Min(255, px[2]+float64(c.B)*k)
	} else {
		px[0] = px[0]*(1-k) + float64(c.R)*k
		px[1] = px[1]*(1-k) + float64(c.G)*k
		px[2] = px[2]*(1-k) + float64(c.B)*k
	}
}

// Cell returns the colour of one cell.
func (s *Surface) Cell(col, row int) color.RGBA {
	i := (row*s.cols + col) * 3
	return color.RGBA{
		R: uint8(math.Round(s.buf[i])),
		G: uint8(math.Round(s.buf[i+1])),
		B: uint8(math.Round(s.buf[i+2])),
		A: 255,
	}
}

// Shade maps a cell colour to a glyph and a display colour. The glyph
// carries brightness; the colour is normalised so hue stays readable.
func Shade(c color.RGBA) (rune, tcell.Color) {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	idx := int(lum / 256 * float64(len(ramp)))
	idx = min(max(idx, 0), len(ramp)-1)

	peak := max(c.R, c.G, c.B)
	if peak == 0 {
		return rune(ramp[idx]), tcell.ColorBlack
	}
	gain := 255 / float64(peak)
	return rune(ramp[idx]), tcell.NewRGBColor(
		int32(float64(c.R)*gain),
		int32(float64(c.G)*gain),
		int32(float64(c.B)*gain),
	)
}

// Present copies the buffer to the screen. It does not call Show.
func (s *Surface) Present(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			ch, fg := Shade(s.Cell(col, row))
			screen.SetContent(col, row, ch, nil, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
		}
	}
}
