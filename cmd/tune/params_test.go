package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/heartbeat/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: got %f, want %f", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestClampKeepsBounds(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	for i := range v {
		v[i] = 1e6
	}
	for i, x := range pv.Clamp(v) {
		if x != pv.Specs[i].Max {
			t.Errorf("%s: got %f, want %f", pv.Specs[i].Name, x, pv.Specs[i].Max)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pv := NewParamVector()

	// particle_count, max_size, lightness_base, pulse_gain, fade_alpha, pulse_exponent
	pv.ApplyToConfig(cfg, []float64{2500.4, 1.5, 0.6, 0.15, 0.37, 63})

	if cfg.Heart.ParticleCount != 2500 {
		t.Errorf("particle count = %d, want 2500", cfg.Heart.ParticleCount)
	}
	if cfg.Particle.MaxSize != 1.5 {
		t.Errorf("max size = %f, want 1.5", cfg.Particle.MaxSize)
	}
	if cfg.Particle.LightnessBase+cfg.Particle.LightnessSpan > 1+1e-9 {
		t.Errorf("lightness exceeds 1: base %f span %f", cfg.Particle.LightnessBase, cfg.Particle.LightnessSpan)
	}
	if cfg.Pulse.Exponent%2 != 0 {
		t.Errorf("exponent %d is odd", cfg.Pulse.Exponent)
	}
	if cfg.Pulse.Exponent != 64 {
		t.Errorf("exponent = %d, want 64", cfg.Pulse.Exponent)
	}
}

func TestExtractMatchesApply(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pv := NewParamVector()
	want := []float64{3000, 2.5, 0.4, 0.1, 0.38, 70}
	pv.ApplyToConfig(cfg, want)
	got := pv.ExtractFromConfig(cfg)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: got %f, want %f", pv.Specs[i].Name, got[i], want[i])
		}
	}
}
