// Package components defines ECS components for the heart rain.
package components

// Glyph selects which heart shape a drop is drawn as.
type Glyph uint8

const (
	GlyphHeart Glyph = iota
	GlyphSparkle
	GlyphTwin
	GlyphGrowing
	NumGlyphs
)

func (g Glyph) String() string {
	switch g {
	case GlyphHeart:
		return "heart"
	case GlyphSparkle:
		return "sparkle"
	case GlyphTwin:
		return "twin"
	case GlyphGrowing:
		return "growing"
	default:
		return "unknown"
	}
}

// RGB returns the glyph's colour.
func (g Glyph) RGB() (r, gr, b uint8) {
	switch g {
	case GlyphSparkle:
		return 255, 110, 180 // Pink
	case GlyphTwin:
		return 255, 80, 120 // Rose
	case GlyphGrowing:
		return 240, 60, 160 // Magenta
	default:
		return 230, 30, 70 // Red
	}
}

// Position is a drop's location in viewport fractions: (0,0) is the
// top-left corner, (1,1) the bottom-right.
type Position struct {
	X, Y float32
}

// Velocity is the distance travelled per tick in viewport fractions.
type Velocity struct {
	X, Y float32
}

// Appearance describes how a drop is drawn.
type Appearance struct {
	Glyph Glyph
	Size  float32 // Pixels
}

// Lifetime tracks a drop's age in ticks.
type Lifetime struct {
	Age int32
	Max int32
}

// Expired reports whether the drop has outlived its lifetime.
func (l Lifetime) Expired() bool {
	return l.Age >= l.Max
}
