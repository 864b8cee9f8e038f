// Package config provides configuration loading and access for the heart animation.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all animation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Heart     HeartConfig     `yaml:"heart"`
	Particle  ParticleConfig  `yaml:"particle"`
	Dispersal DispersalConfig `yaml:"dispersal"`
	Pulse     PulseConfig     `yaml:"pulse"`
	Rotation  RotationConfig  `yaml:"rotation"`
	Render    RenderConfig    `yaml:"render"`
	Rain      RainConfig      `yaml:"rain"`
	Proposal  ProposalConfig  `yaml:"proposal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// HeartConfig holds the heart volume parameters.
type HeartConfig struct {
	ParticleCount int     `yaml:"particle_count"` // Fixed for the lifetime of the animation
	Size          float64 `yaml:"size"`           // Radial scale of the heart curve
}

// ParticleConfig holds coalesced-state tuning and particle appearance.
type ParticleConfig struct {
	Ease          float64 `yaml:"ease"`           // Smoothing factor toward the pulsed target
	PulseGain     float64 `yaml:"pulse_gain"`     // Target scale per unit of pulse
	Jitter        float64 `yaml:"jitter"`         // Per-axis jitter span
	MaxSize       float64 `yaml:"max_size"`       // Upper bound of the initial size
	CalmFriction  float64 `yaml:"calm_friction"`  // Friction before celebration
	HueBase       float64 `yaml:"hue_base"`       // Degrees
	HueSpan       float64 `yaml:"hue_span"`       // Degrees
	Saturation    float64 `yaml:"saturation"`     // [0, 1]
	LightnessBase float64 `yaml:"lightness_base"` // [0, 1]
	LightnessSpan float64 `yaml:"lightness_span"` // [0, 1]
}

// DispersalConfig holds the post-celebration physics.
type DispersalConfig struct {
	BurstSpeed     float64 `yaml:"burst_speed"`
	SettleFriction float64 `yaml:"settle_friction"`
	SizeDecay      float64 `yaml:"size_decay"`
	MinSize        float64 `yaml:"min_size"`
}

// PulseConfig shapes the heartbeat waveform:
// sin(t*Frequency)^Exponent*SpikeAmplitude + sin(t*Frequency+WobblePhase)*WobbleAmplitude.
type PulseConfig struct {
	TimeStep        float64 `yaml:"time_step"`
	Frequency       float64 `yaml:"frequency"`
	Exponent        int     `yaml:"exponent"`
	SpikeAmplitude  float64 `yaml:"spike_amplitude"`
	WobblePhase     float64 `yaml:"wobble_phase"`
	WobbleAmplitude float64 `yaml:"wobble_amplitude"`
}

// RotationConfig holds camera rotation parameters.
type RotationConfig struct {
	AutoSpin     float64 `yaml:"auto_spin"`     // Radians added to the auto target per tick
	Ease         float64 `yaml:"ease"`          // Smoothing factor toward the target angles
	PointerScale float64 `yaml:"pointer_scale"` // Radians per pixel of pointer offset
}

// RenderConfig holds projection and compositing parameters.
type RenderConfig struct {
	Focal     float64 `yaml:"focal"`
	FadeAlpha float64 `yaml:"fade_alpha"`
	FadeColor [3]int  `yaml:"fade_color"`
}

// RainConfig holds the decorative heart rain parameters.
type RainConfig struct {
	Interval float64 `yaml:"interval"` // Seconds between spawns
	Lifetime float64 `yaml:"lifetime"` // Seconds before removal
	MinSize  float64 `yaml:"min_size"`
	MaxSize  float64 `yaml:"max_size"`
	MinFall  float64 `yaml:"min_fall"` // Seconds to cross the screen
	MaxFall  float64 `yaml:"max_fall"`
}

// ProposalConfig holds the Yes/No panel parameters.
type ProposalConfig struct {
	Phrases      []string `yaml:"phrases"`
	Question     string   `yaml:"question"`
	Success      string   `yaml:"success"`
	YesGrowth    float64  `yaml:"yes_growth"`
	MinNoAlpha   float64  `yaml:"min_no_alpha"`
	DodgeArea    float64  `yaml:"dodge_area"`    // Fraction of the viewport the No button may jump within
	FadeDuration float64  `yaml:"fade_duration"` // Seconds
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickSeconds    float64 // 1 / Screen.TargetFPS
	RainSpawnTicks int32   // Rain.Interval in ticks
	RainLifeTicks  int32   // Rain.Lifetime in ticks
	ScreenW32      float32
	ScreenH32      float32
	DispersalTicks int32 // Ticks until a max-size particle falls below MinSize
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.clampRanges()
	cfg.computeDerived()

	return cfg, nil
}

// Recompute re-applies range checks and derived values after fields were
// changed in code.
func (c *Config) Recompute() {
	c.clampRanges()
	c.computeDerived()
}

// clampRanges pulls tuning values back into their documented ranges.
// Out-of-range values are logged and replaced, never rejected.
func (c *Config) clampRanges() {
	clampInt(&c.Heart.ParticleCount, 0, 20000, "heart.particle_count")
	clampFloat(&c.Heart.Size, 15, 16, "heart.size")

	clampFloat(&c.Particle.Ease, 0.01, 1, "particle.ease")
	clampFloat(&c.Particle.MaxSize, 0, 10, "particle.max_size")
	clampFloat(&c.Particle.CalmFriction, 0.90, 0.93, "particle.calm_friction")
	clampFloat(&c.Particle.Saturation, 0, 1, "particle.saturation")
	clampFloat(&c.Particle.LightnessBase, 0, 1, "particle.lightness_base")
	clampFloat(&c.Particle.LightnessSpan, 0, 1-c.Particle.LightnessBase, "particle.lightness_span")

	clampFloat(&c.Dispersal.BurstSpeed, 15, 18, "dispersal.burst_speed")
	clampFloat(&c.Dispersal.SettleFriction, 0.96, 0.965, "dispersal.settle_friction")
	clampFloat(&c.Dispersal.SizeDecay, 0.9, 0.999, "dispersal.size_decay")
	clampFloat(&c.Dispersal.MinSize, 0.001, 1, "dispersal.min_size")

	clampFloat(&c.Pulse.TimeStep, 0.018, 0.02, "pulse.time_step")
	clampInt(&c.Pulse.Exponent, 60, 80, "pulse.exponent")
	// Odd exponents would let the spike go negative.
	if c.Pulse.Exponent%2 != 0 {
		slog.Warn("config value adjusted", "key", "pulse.exponent", "from", c.Pulse.Exponent, "to", c.Pulse.Exponent+1)
		c.Pulse.Exponent++
		clampInt(&c.Pulse.Exponent, 60, 80, "pulse.exponent")
	}

	clampFloat(&c.Rotation.Ease, 0.05, 0.06, "rotation.ease")
	clampFloat(&c.Rotation.PointerScale, 0.0008, 0.001, "rotation.pointer_scale")

	clampFloat(&c.Render.Focal, 1, 10000, "render.focal")
	clampFloat(&c.Render.FadeAlpha, 0.35, 0.4, "render.fade_alpha")
	for i := range c.Render.FadeColor {
		clampInt(&c.Render.FadeColor[i], 0, 255, "render.fade_color")
	}

	clampFloat(&c.Rain.Interval, 0.01, 10, "rain.interval")
	clampFloat(&c.Rain.Lifetime, 0.1, 60, "rain.lifetime")
	if c.Rain.MaxSize < c.Rain.MinSize {
		c.Rain.MaxSize = c.Rain.MinSize
	}
	if c.Rain.MaxFall < c.Rain.MinFall {
		c.Rain.MaxFall = c.Rain.MinFall
	}
	clampFloat(&c.Rain.MinFall, 0.1, 60, "rain.min_fall")
	clampFloat(&c.Rain.MaxFall, c.Rain.MinFall, 60, "rain.max_fall")

	clampFloat(&c.Proposal.MinNoAlpha, 0, 1, "proposal.min_no_alpha")
	clampFloat(&c.Proposal.DodgeArea, 0, 1, "proposal.dodge_area")
	if len(c.Proposal.Phrases) == 0 {
		c.Proposal.Phrases = []string{"No"}
	}

	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := float64(c.Screen.TargetFPS)
	c.Derived.TickSeconds = 1.0 / fps
	c.Derived.RainSpawnTicks = max(int32(math.Round(c.Rain.Interval*fps)), 1)
	c.Derived.RainLifeTicks = max(int32(math.Round(c.Rain.Lifetime*fps)), 1)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// size * decay^n < minSize  =>  n > log(minSize/size) / log(decay)
	if c.Particle.MaxSize > c.Dispersal.MinSize {
		n := math.Log(c.Dispersal.MinSize/c.Particle.MaxSize) / math.Log(c.Dispersal.SizeDecay)
		c.Derived.DispersalTicks = int32(math.Ceil(n))
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func clampFloat(v *float64, lo, hi float64, key string) {
	orig := *v
	switch {
	case math.IsNaN(orig):
		*v = lo
	case orig < lo:
		*v = lo
	case orig > hi:
		*v = hi
	default:
		return
	}
	slog.Warn("config value adjusted", "key", key, "from", orig, "to", *v)
}

func clampInt(v *int, lo, hi int, key string) {
	orig := *v
	switch {
	case orig < lo:
		*v = lo
	case orig > hi:
		*v = hi
	default:
		return
	}
	slog.Warn("config value adjusted", "key", key, "from", orig, "to", *v)
}
