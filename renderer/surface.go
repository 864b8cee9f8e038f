// Package renderer draws the heart and its decorations with raylib.
package renderer

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSurface is a persistent render texture the heart is drawn into.
// The texture survives between frames so translucent fades leave trails.
type RaylibSurface struct {
	target      rl.RenderTexture2D
	w, h        int32
	initialized bool
}

// NewRaylibSurface creates a surface. Init must be called after the window exists.
func NewRaylibSurface(w, h int32) *RaylibSurface {
	return &RaylibSurface{w: max(w, 1), h: max(h, 1)}
}

// Init allocates the render texture (must be called after raylib window is created).
func (s *RaylibSurface) Init() {
	if s.initialized {
		return
	}
	s.target = rl.LoadRenderTexture(s.w, s.h)
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
	s.initialized = true
}

// Resize recreates the render texture when the window size changes.
// Accumulated trails are discarded.
func (s *RaylibSurface) Resize(w, h int32) {
	w, h = max(w, 1), max(h, 1)
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if s.initialized {
		rl.UnloadRenderTexture(s.target)
		s.initialized = false
		s.Init()
	}
}

// Size returns the texture dimensions.
func (s *RaylibSurface) Size() (int, int) {
	return int(s.w), int(s.h)
}

// Begin redirects drawing into the texture.
func (s *RaylibSurface) Begin() {
	if !s.initialized {
		s.Init()
	}
	rl.BeginTextureMode(s.target)
}

// End restores drawing to the backbuffer.
func (s *RaylibSurface) End() {
	rl.EndTextureMode()
}

// Fade paints c over the texture using c.A as opacity.
func (s *RaylibSurface) Fade(c color.RGBA) {
	rl.DrawRectangle(0, 0, s.w, s.h, c)
}

// BeginAdditive switches to additive blending.
func (s *RaylibSurface) BeginAdditive() {
	rl.BeginBlendMode(rl.BlendAdditive)
}

// EndAdditive restores alpha blending.
func (s *RaylibSurface) EndAdditive() {
	rl.EndBlendMode()
}

// DrawCircle fills a circle.
func (s *RaylibSurface) DrawCircle(x, y, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(r), c)
}

// Present blits the texture to the backbuffer. Render textures are stored
// upside down, hence the negative source height. The alpha fades leave the
// texture's own alpha below one, so its colour is copied as-is.
func (s *RaylibSurface) Present() {
	rl.BeginBlendMode(rl.BlendAlphaPremultiply)
	rl.DrawTextureRec(
		s.target.Texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(s.w), Height: -float32(s.h)},
		rl.Vector2{},
		rl.White,
	)
	rl.EndBlendMode()
}

// WritePNG reads the texture back and exports it. It implements
// game.Snapshotter.
func (s *RaylibSurface) WritePNG(path string) error {
	if !s.initialized {
		return fmt.Errorf("surface not initialized")
	}
	img := rl.LoadImageFromTexture(s.target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("exporting %s failed", path)
	}
	return nil
}

// Unload releases GPU resources.
func (s *RaylibSurface) Unload() {
	if s.initialized {
		rl.UnloadRenderTexture(s.target)
		s.initialized = false
	}
}
