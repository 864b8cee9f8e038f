package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned box centred on the origin.
type Box struct {
	Half mgl64.Vec3
}

// Bounds returns the smallest origin-centred box holding every sample for heartSize.
func Bounds(heartSize float64) Box {
	return Box{Half: mgl64.Vec3{
		CurveHalfWidth * heartSize,
		CurveHalfHeight * heartSize,
		DepthHalfSpan * heartSize,
	}}
}

// Contains reports whether p lies inside the box grown by margin on every axis.
// Non-finite coordinates are never contained.
func (b Box) Contains(p mgl64.Vec3, margin float64) bool {
	for i := 0; i < 3; i++ {
		v := p[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if math.Abs(v) > b.Half[i]+margin {
			return false
		}
	}
	return true
}

// Finite reports whether every component of v is a real number.
func Finite(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}
