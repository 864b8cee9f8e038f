// Package raster provides a software drawing surface with additive blending.
// It backs headless runs, PNG snapshots and tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

// Bezier control distance for a quarter circle.
const kappa = 0.5522847498

// Raster is an in-memory RGBA surface.
type Raster struct {
	img      *image.RGBA
	additive bool

	// Scratch coverage mask and rasterizer reused between circles
	mask *image.Alpha
	z    *vector.Rasterizer
}

// New creates a w×h surface cleared to opaque black.
func New(w, h int) *Raster {
	r := &Raster{z: vector.NewRasterizer(1, 1)}
	r.Resize(w, h)
	return r
}

// Size returns the surface dimensions.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image. Previous contents are discarded.
func (r *Raster) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.img != nil {
		if cw, ch := r.Size(); cw == w && ch == h {
			return
		}
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.Clear(color.RGBA{A: 255})
}

// Clear fills the surface with c.
func (r *Raster) Clear(c color.RGBA) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Fade paints c over the whole surface using its alpha, leaving a
// dimmed copy of the previous frame behind.
func (r *Raster) Fade(c color.RGBA) {
	nc := color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(nc), image.Point{}, draw.Over)
}

// BeginAdditive switches DrawCircle to additive blending.
func (r *Raster) BeginAdditive() {
	r.additive = true
}

// EndAdditive switches DrawCircle back to alpha blending.
func (r *Raster) EndAdditive() {
	r.additive = false
}

// DrawCircle fills an anti-aliased circle. c is not premultiplied.
func (r *Raster) DrawCircle(cx, cy, radius float64, c color.RGBA) {
	if radius <= 0 || c.A == 0 || math.IsNaN(cx+cy+radius) {
		return
	}

	bounds := r.img.Bounds()
	x0 := int(math.Floor(cx - radius))
	y0 := int(math.Floor(cy - radius))
	x1 := int(math.Ceil(cx + radius))
	y1 := int(math.Ceil(cy + radius))
	area := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if area.Empty() {
		return
	}

	w, h := x1-x0, y1-y0
	r.rasterize(cx-float64(x0), cy-float64(y0), radius, w, h)

	a := float64(c.A) / 255
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			cov := r.mask.AlphaAt(px-x0, py-y0).A
			if cov == 0 {
				continue
			}
			k := a * float64(cov) / 255
			i := r.img.PixOffset(px, py)
			pix := r.img.Pix[i : i+4 : i+4]
			if r.additive {
				pix[0] = addSat(pix[0], float64(c.R)*k)
				pix[1] = addSat(pix[1], float64(c.G)*k)
				pix[2] = addSat(pix[2], float64(c.B)*k)
			} else {
				pix[0] = mix(pix[0], c.R, k)
				pix[1] = mix(pix[1], c.G, k)
				pix[2] = mix(pix[2], c.B, k)
			}
			pix[3] = 255
		}
	}
}

// rasterize renders a circle's coverage into the scratch mask.
func (r *Raster) rasterize(cx, cy, radius float64, w, h int) {
	if r.mask == nil || r.mask.Bounds().Dx() < w || r.mask.Bounds().Dy() < h {
		r.mask = image.NewAlpha(image.Rect(0, 0, max(w, 8), max(h, 8)))
	} else {
		clear(r.mask.Pix)
	}

	x, y, rad := float32(cx), float32(cy), float32(radius)
	k := float32(kappa) * rad

	z := r.z
	z.Reset(w, h)
	z.MoveTo(x+rad, y)
	z.CubeTo(x+rad, y+k, x+k, y+rad, x, y+rad)
	z.CubeTo(x-k, y+rad, x-rad, y+k, x-rad, y)
	z.CubeTo(x-rad, y-k, x-k, y-rad, x, y-rad)
	z.CubeTo(x+k, y-rad, x+rad, y-k, x+rad, y)
	z.ClosePath()
	z.Draw(r.mask, image.Rect(0, 0, w, h), image.Opaque, image.Point{})
}

// At returns the colour of one pixel.
func (r *Raster) At(x, y int) color.RGBA {
	return r.img.RGBAAt(x, y)
}

// Image returns the backing image. It is reused across frames.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Luminance returns the mean Rec. 601 luma of the surface in [0, 255].
func (r *Raster) Luminance() float64 {
	pix := r.img.Pix
	if len(pix) == 0 {
		return 0
	}
	var sum float64
	for i := 0; i+3 < len(pix); i += 4 {
		sum += 0.299*float64(pix[i]) + 0.587*float64(pix[i+1]) + 0.114*float64(pix[i+2])
	}
	return sum / float64(len(pix)/4)
}

// WritePNG encodes the surface to path.
func (r *Raster) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	return nil
}

func addSat(dst uint8, v float64) uint8 {
	s := float64(dst) + v + 0.5
	if s >= 255 {
		return 255
	}
	return uint8(s)
}

func mix(dst, src uint8, k float64) uint8 {
	return uint8(float64(dst)*(1-k) + float64(src)*k + 0.5)
}
