// Package particle implements the two-state particle that makes up the heart.
package particle

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/geometry"
)

// State is the particle's motion regime.
type State uint8

const (
	// Coalesced particles track their home point with pulse and jitter.
	Coalesced State = iota
	// Dispersing particles fly outward and shrink. Terminal.
	Dispersing
)

func (s State) String() string {
	switch s {
	case Coalesced:
		return "coalesced"
	case Dispersing:
		return "dispersing"
	default:
		return "unknown"
	}
}

// Tuning holds the constants shared by every particle.
type Tuning struct {
	Ease           float64
	PulseGain      float64
	Jitter         float64
	CalmFriction   float64
	SettleFriction float64
	BurstSpeed     float64
	SizeDecay      float64
	MinSize        float64
}

// TuningFromConfig extracts particle tuning from the loaded config.
func TuningFromConfig(cfg *config.Config) Tuning {
	return Tuning{
		Ease:           cfg.Particle.Ease,
		PulseGain:      cfg.Particle.PulseGain,
		Jitter:         cfg.Particle.Jitter,
		CalmFriction:   cfg.Particle.CalmFriction,
		SettleFriction: cfg.Dispersal.SettleFriction,
		BurstSpeed:     cfg.Dispersal.BurstSpeed,
		SizeDecay:      cfg.Dispersal.SizeDecay,
		MinSize:        cfg.Dispersal.MinSize,
	}
}

// HSL is a colour in degrees / unit fractions.
type HSL struct {
	H, S, L float64
}

// Palette is the range particle colours are drawn from.
type Palette struct {
	HueBase, HueSpan             float64
	Saturation                   float64
	LightnessBase, LightnessSpan float64
	MaxSize                      float64
}

// PaletteFromConfig extracts the colour and size ranges from the loaded config.
func PaletteFromConfig(cfg *config.Config) Palette {
	return Palette{
		HueBase:       cfg.Particle.HueBase,
		HueSpan:       cfg.Particle.HueSpan,
		Saturation:    cfg.Particle.Saturation,
		LightnessBase: cfg.Particle.LightnessBase,
		LightnessSpan: cfg.Particle.LightnessSpan,
		MaxSize:       cfg.Particle.MaxSize,
	}
}

// Particle is one point of the heart.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Size     float64
	Friction float64
	Color    HSL

	target mgl64.Vec3
	state  State
	rgba   color.RGBA

	rng    *rand.Rand
	tuning *Tuning
}

// New creates a coalesced particle resting at target. rng and tuning are
// shared across the collection and must outlive it.
func New(target mgl64.Vec3, rng *rand.Rand, tuning *Tuning, palette Palette) *Particle {
	p := &Particle{
		Position: target,
		target:   target,
		Size:     rng.Float64() * palette.MaxSize,
		Friction: tuning.CalmFriction,
		Color: HSL{
			H: palette.HueBase + rng.Float64()*palette.HueSpan,
			S: palette.Saturation,
			L: palette.LightnessBase + rng.Float64()*palette.LightnessSpan,
		},
		rng:    rng,
		tuning: tuning,
	}
	p.rgba = toRGBA(p.Color)
	return p
}

// Target returns the home point. It never changes.
func (p *Particle) Target() mgl64.Vec3 {
	return p.target
}

// State returns the current motion regime.
func (p *Particle) State() State {
	return p.state
}

// Update advances the particle by one tick.
func (p *Particle) Update(pulse float64) {
	switch p.state {
	case Coalesced:
		p.updateCoalesced(pulse)
	case Dispersing:
		p.updateDispersing()
	}
}

func (p *Particle) updateCoalesced(pulse float64) {
	t := p.tuning
	pulsed := p.target.Mul(1 + pulse*t.PulseGain)

	// Exponential smoothing: closes Ease of the gap per tick, never overshoots.
	p.Position = p.Position.Add(pulsed.Sub(p.Position).Mul(t.Ease))

	p.Position[0] += (p.rng.Float64() - 0.5) * t.Jitter
	p.Position[1] += (p.rng.Float64() - 0.5) * t.Jitter
	p.Position[2] += (p.rng.Float64() - 0.5) * t.Jitter

	if !geometry.Finite(p.Position) {
		p.Position = p.target
	}
}

func (p *Particle) updateDispersing() {
	p.Position = p.Position.Add(p.Velocity)
	p.Velocity = p.Velocity.Mul(p.Friction)

	if p.Size > 0 {
		p.Size *= p.tuning.SizeDecay
		if p.Size < p.tuning.MinSize {
			p.Size = 0
		}
	}

	if !geometry.Finite(p.Position) || !geometry.Finite(p.Velocity) {
		p.Position = p.target
		p.Velocity = mgl64.Vec3{}
		p.Size = 0
	}
}

// Disperse switches the particle to the dispersing regime with a random
// outward velocity and settling friction. Only the first call has any
// effect; it reports whether this call made the transition.
func (p *Particle) Disperse() bool {
	if p.state == Dispersing {
		return false
	}
	t := p.tuning
	p.Velocity = mgl64.Vec3{
		(p.rng.Float64() - 0.5) * t.BurstSpeed,
		(p.rng.Float64() - 0.5) * t.BurstSpeed,
		(p.rng.Float64() - 0.5) * t.BurstSpeed,
	}
	p.Friction = t.SettleFriction
	p.state = Dispersing
	return true
}

// Visible reports whether the particle still has anything to draw.
func (p *Particle) Visible() bool {
	return p.Size > 0
}

// RGBA returns the particle colour with the given alpha.
func (p *Particle) RGBA(alpha uint8) color.RGBA {
	c := p.rgba
	c.A = alpha
	return c
}

func toRGBA(hsl HSL) color.RGBA {
	h := math.Mod(hsl.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, hsl.S, hsl.L).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
