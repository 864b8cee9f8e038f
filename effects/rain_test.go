package effects

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/heartbeat/components"
	"github.com/pthm-cable/heartbeat/config"
)

func newTestRain(seed int64) *Rain {
	return NewRain(config.Default(), rand.New(rand.NewSource(seed)))
}

func TestRainInactiveByDefault(t *testing.T) {
	r := newTestRain(1)
	for i := 0; i < 100; i++ {
		r.Update()
	}

	if r.Active() {
		t.Error("expected rain to be inactive before Start")
	}
	if r.Count() != 0 {
		t.Errorf("expected no drops, got %d", r.Count())
	}
}

func TestRainSpawnsOnInterval(t *testing.T) {
	r := newTestRain(2)
	r.Start()

	r.Update()
	if r.Count() != 1 {
		t.Fatalf("expected a drop on the first update, got %d", r.Count())
	}

	// One drop every 6 ticks at 60 fps; 60 ticks in total.
	for i := 1; i < 60; i++ {
		r.Update()
	}
	if r.Count() != 10 {
		t.Errorf("expected 10 drops after one second, got %d", r.Count())
	}

	spawned, expired := r.Drain()
	if spawned != 10 || expired != 0 {
		t.Errorf("expected 10 spawned / 0 expired, got %d / %d", spawned, expired)
	}
	if s, e := r.Drain(); s != 0 || e != 0 {
		t.Errorf("expected counters reset after Drain, got %d / %d", s, e)
	}
}

func TestRainExpiresDrops(t *testing.T) {
	r := newTestRain(3)
	r.Start()

	for i := 0; i < 1200; i++ {
		r.Update()
	}

	// Lifetime 300 ticks / spawn every 6 ticks.
	if n := r.Count(); n < 49 || n > 51 {
		t.Errorf("expected ~50 live drops at steady state, got %d", n)
	}

	spawned, expired := r.Drain()
	if expired == 0 {
		t.Error("expected some drops to expire")
	}
	if spawned-expired != r.Count() {
		t.Errorf("spawned %d - expired %d != live %d", spawned, expired, r.Count())
	}
}

func TestRainDropAttributes(t *testing.T) {
	cfg := config.Default()
	r := NewRain(cfg, rand.New(rand.NewSource(4)))
	r.Start()
	for i := 0; i < 200; i++ {
		r.Update()
	}

	seen := 0
	r.Each(func(d Drop) {
		seen++
		if d.X < 0 || d.X >= 1 {
			t.Errorf("drop x %v outside [0, 1)", d.X)
		}
		if d.Y < spawnY || d.Y > fallEnd {
			t.Errorf("drop y %v outside travel range", d.Y)
		}
		if float64(d.Size) < cfg.Rain.MinSize || float64(d.Size) > cfg.Rain.MaxSize {
			t.Errorf("drop size %v outside [%v, %v]", d.Size, cfg.Rain.MinSize, cfg.Rain.MaxSize)
		}
		if d.Glyph >= components.NumGlyphs {
			t.Errorf("unexpected glyph %v", d.Glyph)
		}
		if d.Fade < 0 || d.Fade > 1 {
			t.Errorf("fade %v outside [0, 1]", d.Fade)
		}
	})

	if seen != r.Count() {
		t.Errorf("Each visited %d drops, Count reports %d", seen, r.Count())
	}
}

func TestRainDropsFall(t *testing.T) {
	r := newTestRain(5)
	r.Start()
	r.Update()

	var before float32
	r.Each(func(d Drop) { before = d.Y })

	// Next spawn is 6 ticks away, so only the first drop exists.
	r.Update()
	var after float32
	r.Each(func(d Drop) { after = d.Y })

	if after <= before {
		t.Errorf("expected drop to fall, y %v -> %v", before, after)
	}
}

func TestRainStartIsIdempotent(t *testing.T) {
	r := newTestRain(6)
	r.Start()
	r.Update()
	r.Update()
	r.Start()
	r.Update()

	if r.Count() != 1 {
		t.Errorf("expected restart to leave spawn timing alone, got %d drops", r.Count())
	}
}

func TestLifetimeFade(t *testing.T) {
	tests := []struct {
		age, max int32
		want     float32
	}{
		{0, 100, 1},
		{80, 100, 1},
		{90, 100, 0.5},
		{100, 100, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		got := fade(&components.Lifetime{Age: tt.age, Max: tt.max})
		if d := got - tt.want; d > 1e-6 || d < -1e-6 {
			t.Errorf("fade(age=%d, max=%d) = %v, want %v", tt.age, tt.max, got, tt.want)
		}
	}
}
