// Package geometry samples points from a volumetric heart.
package geometry

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Extents of the unit heart curve. X peaks at ±16 (t = π/2, 3π/2) and
// Y at 17 (t = π); the top lobes reach -12 or so. Depth spans ±5.
const (
	CurveHalfWidth  = 16.0
	CurveHalfHeight = 17.0
	DepthHalfSpan   = 5.0
)

// HeartCurve evaluates the classic parametric heart at angle t.
// Y points down the screen, so the lobes sit at negative y.
func HeartCurve(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
	return x, y
}

// Sampler draws points that fill the heart volume with uniform density.
// Not safe for concurrent use; the rng is shared with the caller's loop.
type Sampler struct {
	rng       *rand.Rand
	heartSize float64
}

// NewSampler creates a sampler scaled by heartSize.
func NewSampler(rng *rand.Rand, heartSize float64) *Sampler {
	return &Sampler{rng: rng, heartSize: heartSize}
}

// HeartSize returns the radial scale.
func (s *Sampler) HeartSize() float64 {
	return s.heartSize
}

// Sample returns one point inside the heart.
func (s *Sampler) Sample() mgl64.Vec3 {
	p, _ := s.SampleWithScale()
	return p
}

// SampleWithScale returns a point and the radial scale applied to it.
// scale = cbrt(u) * heartSize keeps the density uniform per unit volume;
// a linear u would pile points up near the centre.
func (s *Sampler) SampleWithScale() (mgl64.Vec3, float64) {
	t := s.rng.Float64() * 2 * math.Pi
	u := s.rng.Float64()
	scale := VolumeScale(u, s.heartSize)

	x, y := HeartCurve(t)
	z := (s.rng.Float64() - 0.5) * 2 * DepthHalfSpan

	return mgl64.Vec3{x * scale, y * scale, z * scale}, scale
}

// SampleN fills a slice with n samples.
func (s *Sampler) SampleN(n int) []mgl64.Vec3 {
	if n <= 0 {
		return nil
	}
	out := make([]mgl64.Vec3, n)
	for i := range out {
		out[i] = s.Sample()
	}
	return out
}

// VolumeScale maps a uniform draw u in [0,1) to a radial scale in [0, heartSize).
func VolumeScale(u, heartSize float64) float64 {
	return math.Cbrt(u) * heartSize
}
