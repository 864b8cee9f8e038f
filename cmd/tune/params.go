// Package main provides CMA-ES tuning for the heart's look.
package main

import (
	"math"

	"github.com/pthm-cable/heartbeat/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters. Bounds
// stay inside the ranges config loading accepts.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Volume
			{Name: "particle_count", Path: "heart.particle_count", Min: 2000, Max: 4000, Default: 3500},
			// Particle look
			{Name: "max_size", Path: "particle.max_size", Min: 1.0, Max: 3.0, Default: 2.0},
			{Name: "lightness_base", Path: "particle.lightness_base", Min: 0.35, Max: 0.6, Default: 0.5},
			{Name: "pulse_gain", Path: "particle.pulse_gain", Min: 0.05, Max: 0.2, Default: 0.1},
			// Trails
			{Name: "fade_alpha", Path: "render.fade_alpha", Min: 0.35, Max: 0.4, Default: 0.4},
			// Beat sharpness
			{Name: "pulse_exponent", Path: "pulse.exponent", Min: 60, Max: 80, Default: 60},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	cfg.Heart.ParticleCount = int(math.Round(clamped[i]))
	i++

	cfg.Particle.MaxSize = clamped[i]
	i++
	cfg.Particle.LightnessBase = clamped[i]
	i++
	cfg.Particle.LightnessSpan = math.Min(cfg.Particle.LightnessSpan, 1-cfg.Particle.LightnessBase)
	cfg.Particle.PulseGain = clamped[i]
	i++

	cfg.Render.FadeAlpha = clamped[i]
	i++

	// The spike must stay non-negative, so the exponent is even
	exp := int(math.Round(clamped[i]))
	if exp%2 != 0 {
		exp++
	}
	cfg.Pulse.Exponent = min(exp, 80)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Heart.ParticleCount),
		cfg.Particle.MaxSize,
		cfg.Particle.LightnessBase,
		cfg.Particle.PulseGain,
		cfg.Render.FadeAlpha,
		float64(cfg.Pulse.Exponent),
	}
}
