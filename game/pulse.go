package game

import (
	"math"

	"github.com/pthm-cable/heartbeat/config"
)

// Pulse returns the heartbeat at time t: a rare sharp spike from a high
// even power of a sine, plus a small phase-shifted wobble.
func Pulse(t float64, cfg config.PulseConfig) float64 {
	phase := t * cfg.Frequency
	spike := math.Pow(math.Sin(phase), float64(cfg.Exponent)) * cfg.SpikeAmplitude
	wobble := math.Sin(phase+cfg.WobblePhase) * cfg.WobbleAmplitude
	return spike + wobble
}
