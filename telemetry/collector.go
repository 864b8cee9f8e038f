package telemetry

import "math"

// BeatThreshold is the pulse level whose upward crossing counts as one beat.
const BeatThreshold = 0.25

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Per-tick accumulators for current window
	ticks      int
	drawnSum   int
	clippedSum int
	pulsePeak  float64
	beats      int
	abovePulse bool

	// Event counters for current window
	dodges int
	events []Event
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		pulsePeak:           math.Inf(-1),
	}
}

// RecordTick records one tick's pulse and draw counts.
func (c *Collector) RecordTick(pulse float64, drawn, clipped int) {
	c.ticks++
	c.drawnSum += drawn
	c.clippedSum += clipped

	if pulse > c.pulsePeak {
		c.pulsePeak = pulse
	}

	above := pulse >= BeatThreshold
	if above && !c.abovePulse {
		c.beats++
	}
	c.abovePulse = above
}

// Record records a discrete event.
func (c *Collector) Record(ev Event) {
	if ev.Type == EventDodge {
		c.dodges++
	}
	c.events = append(c.events, ev)
}

// Events returns the events recorded in the current window.
func (c *Collector) Events() []Event {
	return c.events
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the animation state read at the end of a window.
type Sample struct {
	AnimTime   float64
	Pulse      float64
	Celebrated bool
	Particles  int
	Dispersing int
	Visible    int

	Radii  []float64 // Distance of each visible particle from the origin
	Sizes  []float64
	Speeds []float64

	RainLive    int
	RainSpawned int
	RainExpired int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	radius := Describe(s.Radii)

	var drawn, clipped, peak float64
	if c.ticks > 0 {
		drawn = float64(c.drawnSum) / float64(c.ticks)
		clipped = float64(c.clippedSum) / float64(c.ticks)
		peak = c.pulsePeak
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		AnimTime:        s.AnimTime,

		Pulse:     s.Pulse,
		PulsePeak: peak,
		Beats:     c.beats,

		Celebrated: s.Celebrated,
		Particles:  s.Particles,
		Dispersing: s.Dispersing,
		Visible:    s.Visible,

		Drawn:   drawn,
		Clipped: clipped,

		RadiusMean: radius.Mean,
		RadiusStd:  radius.Std,
		RadiusP10:  radius.P10,
		RadiusP50:  radius.P50,
		RadiusP90:  radius.P90,

		SizeMean:  Mean(s.Sizes),
		SpeedMean: Mean(s.Speeds),

		Dodges: c.dodges,

		RainLive:    s.RainLive,
		RainSpawned: s.RainSpawned,
		RainExpired: s.RainExpired,
	}

	// Reset for next window; beat edge state carries over.
	c.windowStartTick = currentTick
	c.ticks = 0
	c.drawnSum = 0
	c.clippedSum = 0
	c.pulsePeak = math.Inf(-1)
	c.beats = 0
	c.dodges = 0
	c.events = c.events[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
