package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat"
)

func TestHeartCurveExtremes(t *testing.T) {
	tests := []struct {
		name  string
		t     float64
		wantX float64
		wantY float64
	}{
		{"top notch", 0, 0, -5},
		{"right lobe", math.Pi / 2, 16, -4},
		{"bottom tip", math.Pi, 0, 17},
		{"left lobe", 3 * math.Pi / 2, -16, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := HeartCurve(tt.t)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("HeartCurve(%v) = (%v, %v), want (%v, %v)", tt.t, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHeartCurveWithinExtents(t *testing.T) {
	for i := 0; i < 10000; i++ {
		x, y := HeartCurve(float64(i) / 10000 * 2 * math.Pi)
		if math.Abs(x) > CurveHalfWidth+1e-9 || math.Abs(y) > CurveHalfHeight+1e-9 {
			t.Fatalf("curve point (%v, %v) outside extents", x, y)
		}
	}
}

func TestSampleScaleRange(t *testing.T) {
	const heartSize = 16.0
	s := NewSampler(rand.New(rand.NewSource(1)), heartSize)

	for i := 0; i < 20000; i++ {
		_, scale := s.SampleWithScale()
		if scale < 0 || scale > heartSize {
			t.Fatalf("scale %v outside [0, %v]", scale, heartSize)
		}
	}
}

func TestSampleAxesShareScale(t *testing.T) {
	const heartSize = 15.0
	s := NewSampler(rand.New(rand.NewSource(2)), heartSize)

	for i := 0; i < 5000; i++ {
		p, scale := s.SampleWithScale()
		if scale < 1e-3 {
			continue
		}
		unit := p.Mul(1 / scale)

		if math.Abs(unit.Z()) > DepthHalfSpan+1e-9 {
			t.Fatalf("depth %v not scaled by %v", p.Z(), scale)
		}

		// Recover t from x and check y lands on the same curve point.
		sinT := math.Cbrt(unit.X() / 16)
		sinT = math.Max(-1, math.Min(1, sinT))
		a := math.Asin(sinT)
		_, y1 := HeartCurve(a)
		_, y2 := HeartCurve(math.Pi - a)
		if math.Min(math.Abs(unit.Y()-y1), math.Abs(unit.Y()-y2)) > 1e-4 {
			t.Fatalf("sample %v does not sit on the heart curve at scale %v", p, scale)
		}
	}
}

func TestSampleWithinBounds(t *testing.T) {
	const heartSize = 16.0
	s := NewSampler(rand.New(rand.NewSource(3)), heartSize)
	box := Bounds(heartSize)

	for _, p := range s.SampleN(20000) {
		if !box.Contains(p, 0) {
			t.Fatalf("sample %v outside bounds %v", p, box.Half)
		}
	}
}

// Points scaled by cbrt(u) should land in equal-volume shells equally often.
func TestSampleVolumetricDensity(t *testing.T) {
	const (
		heartSize = 16.0
		samples   = 50000
		bins      = 10
	)
	s := NewSampler(rand.New(rand.NewSource(4)), heartSize)

	observed := make([]float64, bins)
	for i := 0; i < samples; i++ {
		_, scale := s.SampleWithScale()
		bin := int(scale / heartSize * bins)
		if bin >= bins {
			bin = bins - 1
		}
		observed[bin]++
	}

	// Shell k covers radii [k/B, (k+1)/B); its volume share is ((k+1)^3 - k^3) / B^3.
	expected := make([]float64, bins)
	for k := range expected {
		lo := float64(k) / bins
		hi := float64(k+1) / bins
		expected[k] = (hi*hi*hi - lo*lo*lo) * samples
	}

	// 9 degrees of freedom; 33.7 is the 0.0001 critical value.
	chi := stat.ChiSquare(observed, expected)
	if chi > 33.7 {
		t.Errorf("radial density not uniform per volume: chi-square %v, observed %v", chi, observed)
	}

	// Half the radius holds an eighth of the volume.
	inner := 0.0
	for k := 0; k < bins/2; k++ {
		inner += observed[k]
	}
	if frac := inner / samples; math.Abs(frac-0.125) > 0.01 {
		t.Errorf("inner half-radius fraction = %v, want ~0.125", frac)
	}
}

func TestLinearScaleSkewsDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const samples = 20000

	cubed := make([]float64, samples)
	linear := make([]float64, samples)
	for i := 0; i < samples; i++ {
		u := rng.Float64()
		r := VolumeScale(u, 1)
		cubed[i] = r * r * r
		linear[i] = u * u * u
	}

	// r^3 of a volume-uniform radius is itself uniform with mean 1/2.
	if m := stat.Mean(cubed, nil); math.Abs(m-0.5) > 0.01 {
		t.Errorf("mean r^3 with cube root = %v, want ~0.5", m)
	}
	// A linear radius gives E[u^3] = 1/4, packing points near the centre.
	if m := stat.Mean(linear, nil); math.Abs(m-0.25) > 0.01 {
		t.Errorf("mean r^3 with linear radius = %v, want ~0.25", m)
	}
}

func TestBoxContains(t *testing.T) {
	box := Bounds(1)

	tests := []struct {
		name   string
		p      mgl64.Vec3
		margin float64
		want   bool
	}{
		{"origin", mgl64.Vec3{}, 0, true},
		{"corner", mgl64.Vec3{16, -17, 5}, 0, true},
		{"outside x", mgl64.Vec3{16.5, 0, 0}, 0, false},
		{"outside x within margin", mgl64.Vec3{16.5, 0, 0}, 1, true},
		{"nan", mgl64.Vec3{math.NaN(), 0, 0}, 100, false},
		{"inf", mgl64.Vec3{0, math.Inf(1), 0}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.p, tt.margin); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.p, tt.margin, got, tt.want)
			}
		})
	}
}

func TestSampleNEmpty(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(6)), 16)
	if got := s.SampleN(0); got != nil {
		t.Errorf("expected nil for zero samples, got %d points", len(got))
	}
}
