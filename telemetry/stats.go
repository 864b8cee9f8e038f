package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	AnimTime        float64 `csv:"anim_time"` // Pulse clock, advanced by the fixed time step

	// Heartbeat during window
	Pulse     float64 `csv:"pulse"`
	PulsePeak float64 `csv:"pulse_peak"`
	Beats     int     `csv:"beats"`

	// Particle state at window end
	Celebrated bool `csv:"celebrated"`
	Particles  int  `csv:"particles"`
	Dispersing int  `csv:"dispersing"`
	Visible    int  `csv:"visible"`

	// Mean per tick during window
	Drawn   float64 `csv:"drawn"`
	Clipped float64 `csv:"clipped"`

	// Distance from the heart centre (sampled at window end)
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	SizeMean  float64 `csv:"size_mean"`
	SpeedMean float64 `csv:"speed_mean"`

	// Interaction
	Dodges int `csv:"dodges"`

	// Heart rain
	RainLive    int `csv:"rain_live"`
	RainSpawned int `csv:"rain_spawned"`
	RainExpired int `csv:"rain_expired"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Describe calculates mean, population standard deviation and percentiles.
// values is not modified.
func Describe(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("anim_time", s.AnimTime),
		slog.Float64("pulse", s.Pulse),
		slog.Float64("pulse_peak", s.PulsePeak),
		slog.Int("beats", s.Beats),
		slog.Bool("celebrated", s.Celebrated),
		slog.Int("particles", s.Particles),
		slog.Int("dispersing", s.Dispersing),
		slog.Int("visible", s.Visible),
		slog.Float64("drawn", s.Drawn),
		slog.Float64("clipped", s.Clipped),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_p10", s.RadiusP10),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Int("dodges", s.Dodges),
		slog.Int("rain_live", s.RainLive),
		slog.Int("rain_spawned", s.RainSpawned),
		slog.Int("rain_expired", s.RainExpired),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"pulse_peak", s.PulsePeak,
		"beats", s.Beats,
		"celebrated", s.Celebrated,
		"visible", s.Visible,
		"drawn", s.Drawn,
		"clipped", s.Clipped,
		"radius_mean", s.RadiusMean,
		"radius_p90", s.RadiusP90,
		"size_mean", s.SizeMean,
		"speed_mean", s.SpeedMean,
		"dodges", s.Dodges,
		"rain_live", s.RainLive,
	)
}
