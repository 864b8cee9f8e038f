// Package game runs the heart animation: the heartbeat clock, particle
// updates, camera rotation, the celebration trigger and per-window telemetry.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/heartbeat/camera"
	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/effects"
	"github.com/pthm-cable/heartbeat/geometry"
	"github.com/pthm-cable/heartbeat/particle"
	"github.com/pthm-cable/heartbeat/proposal"
	"github.com/pthm-cable/heartbeat/telemetry"
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // Empty = no CSV output
	Headless       bool
	CelebrateAt    int32 // Celebrate automatically at this tick (0 = never)

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// sprite is one projected particle ready to draw.
type sprite struct {
	x, y, r float64
	c       color.RGBA
}

// Game holds the complete animation state. It is owned by a single
// goroutine; none of its methods are safe for concurrent use.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	// Heart
	particles []*particle.Particle
	tuning    *particle.Tuning
	frame     []sprite

	camera   *camera.Camera
	proposal *proposal.Proposal
	rain     *effects.Rain

	// State
	tick        int32
	time        float64
	pulse       float64
	celebrated  bool
	celebrateAt int32

	viewW, viewH int
	fadeColor    color.RGBA

	// Per-tick draw counts
	drawn   int
	clipped int

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// New creates a game with the heart fully coalesced.
func New(cfg *config.Config, opts Options) (*Game, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	statsWindowSec := opts.StatsWindowSec
	if statsWindowSec <= 0 {
		statsWindowSec = cfg.Telemetry.StatsWindow
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	tuning := particle.TuningFromConfig(cfg)
	g := &Game{
		cfg:         cfg,
		rng:         rng,
		rngSeed:     opts.Seed,
		tuning:      &tuning,
		camera:      camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Rotation, cfg.Render.Focal),
		proposal:    proposal.New(cfg.Proposal, rng),
		rain:        effects.NewRain(cfg, rng),
		celebrateAt: opts.CelebrateAt,
		viewW:       cfg.Screen.Width,
		viewH:       cfg.Screen.Height,
		fadeColor: color.RGBA{
			R: uint8(cfg.Render.FadeColor[0]),
			G: uint8(cfg.Render.FadeColor[1]),
			B: uint8(cfg.Render.FadeColor[2]),
			A: uint8(math.Round(cfg.Render.FadeAlpha * 255)),
		},
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:        telemetry.NewCollector(statsWindowSec, float32(cfg.Derived.TickSeconds)),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		outputManager:    outputManager,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	g.spawnHeart()

	slog.Info("heart created",
		"seed", opts.Seed,
		"particles", len(g.particles),
		"heart_size", cfg.Heart.Size,
		"headless", opts.Headless,
	)

	return g, nil
}

// spawnHeart fills the particle collection. The count is fixed from here on.
func (g *Game) spawnHeart() {
	cfg := g.cfg
	sampler := geometry.NewSampler(g.rng, cfg.Heart.Size)
	palette := particle.PaletteFromConfig(cfg)

	g.particles = make([]*particle.Particle, cfg.Heart.ParticleCount)
	for i := range g.particles {
		g.particles[i] = particle.New(sampler.Sample(), g.rng, g.tuning, palette)
	}
	g.frame = make([]sprite, 0, len(g.particles))
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}

// Ticks returns the number of simulation steps taken.
func (g *Game) Ticks() int32 {
	return g.tick
}

// Seed returns the RNG seed the heart was sampled with.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Time returns the pulse clock.
func (g *Game) Time() float64 {
	return g.time
}

// Pulse returns the heartbeat value computed on the last step.
func (g *Game) Pulse() float64 {
	return g.pulse
}

// Celebrated reports whether the proposal has been accepted.
func (g *Game) Celebrated() bool {
	return g.celebrated
}

// Particles returns the particle collection. Callers must not modify it.
func (g *Game) Particles() []*particle.Particle {
	return g.particles
}

// Camera returns the camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Proposal returns the Yes/No panel state.
func (g *Game) Proposal() *proposal.Proposal {
	return g.proposal
}

// Rain returns the heart rain.
func (g *Game) Rain() *effects.Rain {
	return g.rain
}

// Viewport returns the size the heart is projected into.
func (g *Game) Viewport() (w, h int) {
	return g.viewW, g.viewH
}

// DrawCounts returns how many particles were drawn and clipped on the last step.
func (g *Game) DrawCounts() (drawn, clipped int) {
	return g.drawn, g.clipped
}

// PerfCollector returns the timing collector.
func (g *Game) PerfCollector() *telemetry.PerfCollector {
	return g.perfCollector
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}
