// Package effects implements the decorative heart rain shown after celebration.
package effects

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/heartbeat/components"
	"github.com/pthm-cable/heartbeat/config"
)

// Drops start just above the viewport and fall past its bottom edge.
const (
	spawnY  = -0.1
	fallEnd = 1.1
)

// Drop is a read-only view of one falling heart, handed to renderers.
type Drop struct {
	X, Y  float32 // Viewport fractions
	Size  float32 // Pixels
	Glyph components.Glyph
	Fade  float32 // 1 when fresh, 0 when about to expire
}

// Rain spawns and ages heart drops. It owns its own ECS world so the
// particle simulation never touches its state.
type Rain struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Appearance, components.Lifetime]
	filter *ecs.Filter4[components.Position, components.Velocity, components.Appearance, components.Lifetime]

	rng *rand.Rand
	cfg config.RainConfig
	fps float64

	spawnTicks int32
	lifeTicks  int32

	active     bool
	sinceSpawn int32
	count      int

	// Counters since the last Drain
	spawned int
	expired int
}

// NewRain creates an inactive rain using the loaded config.
func NewRain(cfg *config.Config, rng *rand.Rand) *Rain {
	world := ecs.NewWorld()
	return &Rain{
		world:      world,
		mapper:     ecs.NewMap4[components.Position, components.Velocity, components.Appearance, components.Lifetime](world),
		filter:     ecs.NewFilter4[components.Position, components.Velocity, components.Appearance, components.Lifetime](world),
		rng:        rng,
		cfg:        cfg.Rain,
		fps:        float64(cfg.Screen.TargetFPS),
		spawnTicks: cfg.Derived.RainSpawnTicks,
		lifeTicks:  cfg.Derived.RainLifeTicks,
	}
}

// Start begins spawning. Later calls are ignored.
func (r *Rain) Start() {
	if r.active {
		return
	}
	r.active = true
	r.sinceSpawn = r.spawnTicks // spawn on the next update
}

// Active reports whether the rain has started.
func (r *Rain) Active() bool {
	return r.active
}

// Count returns the number of live drops.
func (r *Rain) Count() int {
	return r.count
}

// Update advances every drop by one tick, removes expired drops and
// spawns a new one every spawn interval.
func (r *Rain) Update() {
	if !r.active {
		return
	}

	var toRemove []ecs.Entity

	query := r.filter.Query()
	for query.Next() {
		pos, vel, _, life := query.Get()

		pos.X += vel.X
		pos.Y = min(pos.Y+vel.Y, fallEnd)
		life.Age++

		if life.Expired() {
			toRemove = append(toRemove, query.Entity())
		}
	}

	// Remove after iteration; the world is locked while a query is open.
	for _, e := range toRemove {
		r.world.RemoveEntity(e)
	}
	r.count -= len(toRemove)
	r.expired += len(toRemove)

	r.sinceSpawn++
	if r.sinceSpawn >= r.spawnTicks {
		r.sinceSpawn = 0
		r.spawn()
	}
}

func (r *Rain) spawn() {
	fall := r.cfg.MinFall + r.rng.Float64()*(r.cfg.MaxFall-r.cfg.MinFall)
	speed := (fallEnd - spawnY) / (fall * r.fps)

	pos := components.Position{X: r.rng.Float32(), Y: spawnY}
	vel := components.Velocity{Y: float32(speed)}
	look := components.Appearance{
		Glyph: components.Glyph(r.rng.Intn(int(components.NumGlyphs))),
		Size:  float32(r.cfg.MinSize + r.rng.Float64()*(r.cfg.MaxSize-r.cfg.MinSize)),
	}
	life := components.Lifetime{Max: r.lifeTicks}

	r.mapper.NewEntity(&pos, &vel, &look, &life)
	r.count++
	r.spawned++
}

// Each calls fn for every live drop.
func (r *Rain) Each(fn func(Drop)) {
	query := r.filter.Query()
	for query.Next() {
		pos, _, look, life := query.Get()
		fn(Drop{
			X:     pos.X,
			Y:     pos.Y,
			Size:  look.Size,
			Glyph: look.Glyph,
			Fade:  fade(life),
		})
	}
}

// Drain returns spawn and expiry counts since the previous call and resets them.
func (r *Rain) Drain() (spawned, expired int) {
	spawned, expired = r.spawned, r.expired
	r.spawned, r.expired = 0, 0
	return spawned, expired
}

// fade ramps opacity down over the last fifth of a drop's life.
func fade(l *components.Lifetime) float32 {
	if l.Max <= 0 {
		return 0
	}
	remaining := float64(l.Max-l.Age) / float64(l.Max)
	return float32(math.Max(0, math.Min(1, remaining*5)))
}
