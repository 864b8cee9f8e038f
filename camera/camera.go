// Package camera provides the rotating pinhole camera that views the heart.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/heartbeat/config"
)

// Camera holds the eased rotation state and the viewport it projects into.
// Rotation is applied about X first, then about Y.
type Camera struct {
	// Live rotation angles in radians
	RotX, RotY float64

	// Auto-rotation target, advanced every tick
	AutoRotY float64

	// Last pointer offset from the viewport centre, already scaled to radians
	PointerX, PointerY float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Pinhole focal distance
	Focal float64

	// Tuning
	AutoSpin     float64
	Ease         float64
	PointerScale float64
}

// Projection is a particle's position and size on screen.
type Projection struct {
	X, Y   float64 // Screen coordinates
	Scale  float64 // Perspective scale f/(f+z)
	Radius float64 // Drawn radius
	Depth  float64 // Rotated z, larger is further away
}

// New creates a camera looking straight at the origin.
func New(viewportW, viewportH float64, rot config.RotationConfig, focal float64) *Camera {
	return &Camera{
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		Focal:        focal,
		AutoSpin:     rot.AutoSpin,
		Ease:         rot.Ease,
		PointerScale: rot.PointerScale,
	}
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetPointer records the pointer position in screen pixels. Only the
// latest call matters.
func (c *Camera) SetPointer(sx, sy float64) {
	c.PointerX = (sx - c.ViewportW/2) * c.PointerScale
	c.PointerY = (sy - c.ViewportH/2) * c.PointerScale
}

// Update advances auto-rotation and eases the live angles toward their targets.
func (c *Camera) Update() {
	c.AutoRotY += c.AutoSpin
	c.RotY += (c.AutoRotY + c.PointerX - c.RotY) * c.Ease
	c.RotX += (c.PointerY - c.RotX) * c.Ease
}

// Matrix returns the combined rotation, X then Y.
func (c *Camera) Matrix() mgl64.Mat3 {
	return Rotation(c.RotX, c.RotY)
}

// Project maps a world position to the screen using the live rotation.
func (c *Camera) Project(pos mgl64.Vec3, size float64) (Projection, bool) {
	return Project(pos, size, c.Matrix(), c.Focal, c.ViewportW, c.ViewportH)
}

// IsVisible returns true if a projected circle overlaps the viewport.
func (c *Camera) IsVisible(p Projection) bool {
	return p.X+p.Radius >= 0 && p.X-p.Radius <= c.ViewportW &&
		p.Y+p.Radius >= 0 && p.Y-p.Radius <= c.ViewportH
}

// Reset returns the camera to its initial orientation.
func (c *Camera) Reset() {
	c.RotX, c.RotY = 0, 0
	c.AutoRotY = 0
	c.PointerX, c.PointerY = 0, 0
}

// Rotation builds the X-then-Y rotation used for projection:
//
//	y1 = y cos rx - z sin rx
//	z1 = z cos rx + y sin rx
//	x1 = x cos ry - z1 sin ry
//	z2 = z1 cos ry + x sin ry
func Rotation(rx, ry float64) mgl64.Mat3 {
	return mgl64.Rotate3DY(-ry).Mul3(mgl64.Rotate3DX(rx))
}

// Project rotates pos and applies a pinhole perspective divide. It returns
// false when the point is behind the camera or past the clip plane.
func Project(pos mgl64.Vec3, size float64, rot mgl64.Mat3, focal, viewportW, viewportH float64) (Projection, bool) {
	r := rot.Mul3x1(pos)
	z := r.Z()
	if z < -focal {
		return Projection{}, false
	}

	scale := focal / (focal + z)
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Projection{}, false
	}

	p := Projection{
		X:      viewportW/2 + r.X()*scale,
		Y:      viewportH/2 + r.Y()*scale,
		Scale:  scale,
		Radius: size * scale,
		Depth:  z,
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return Projection{}, false
	}
	return p, true
}
