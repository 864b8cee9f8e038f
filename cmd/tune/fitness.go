package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/game"
	"github.com/pthm-cable/heartbeat/raster"
)

// Score component weights.
const (
	weightBrightness = 0.5
	weightClipping   = 0.3
	weightLiveliness = 0.2

	warmupTicks      = 30   // ignore frames while trails build up
	targetLiveliness = 0.05 // coefficient of variation of frame luminance
)

// FitnessEvaluator runs headless animations and scores how the heart looks.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	seeds      []int64
	baseConfig *config.Config

	// Mean frame luminance the heart should settle at, in [0, 255]
	targetLum float64

	mu          sync.Mutex
	lastMetrics runMetrics
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, baseCfg *config.Config, targetLum float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
		targetLum:  targetLum,
	}
}

// LastMetrics returns the averaged metrics from the most recent evaluation.
func (fe *FitnessEvaluator) LastMetrics() runMetrics {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMetrics
}

// runMetrics summarises one animation run.
type runMetrics struct {
	MeanLum    float64 // mean frame luminance after warmup
	Liveliness float64 // coefficient of variation of frame luminance
	Saturated  float64 // fraction of pixels with a channel at 255, last frame
	Score      float64 // weighted score in [0, 1]
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Recompute()

	// Run all seeds in parallel; each game owns its rng and raster.
	results := make([]runMetrics, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			m := fe.runAnimation(cfg, s)
			m.Score = fe.computeScore(m)
			results[idx] = m
		}(i, seed)
	}
	wg.Wait()

	var avg runMetrics
	for _, r := range results {
		avg.MeanLum += r.MeanLum
		avg.Liveliness += r.Liveliness
		avg.Saturated += r.Saturated
		avg.Score += r.Score
	}
	n := float64(len(results))
	if n > 0 {
		avg.MeanLum /= n
		avg.Liveliness /= n
		avg.Saturated /= n
		avg.Score /= n
	}

	fe.mu.Lock()
	fe.lastMetrics = avg
	fe.mu.Unlock()

	return -avg.Score
}

// runAnimation renders ticks frames for one seed.
func (fe *FitnessEvaluator) runAnimation(cfg *config.Config, seed int64) runMetrics {
	g, err := game.New(cfg, game.Options{Seed: seed})
	if err != nil {
		return runMetrics{}
	}
	defer g.Close()

	w, h := g.Viewport()
	surface := raster.New(w, h)

	lums := make([]float64, 0, max(fe.ticks-warmupTicks, 0))
	for i := 0; i < fe.ticks; i++ {
		g.Tick(surface)
		if i >= warmupTicks {
			lums = append(lums, surface.Luminance())
		}
	}

	var m runMetrics
	if len(lums) > 0 {
		mean, std := stat.MeanStdDev(lums, nil)
		m.MeanLum = mean
		if mean > 0 && !math.IsNaN(std) {
			m.Liveliness = std / mean
		}
	}
	m.Saturated = saturatedFraction(surface)
	return m
}

// copyConfig returns a copy of the base config the evaluation may modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Proposal.Phrases = append([]string(nil), fe.baseConfig.Proposal.Phrases...)
	return &cfg
}

// computeScore weights the run metrics into [0, 1] (higher = better).
func (fe *FitnessEvaluator) computeScore(m runMetrics) float64 {
	brightness := 0.0
	if fe.targetLum > 0 {
		d := (m.MeanLum - fe.targetLum) / (0.25 * fe.targetLum)
		brightness = math.Exp(-d * d)
	}

	clipping := clamp01(1 - m.Saturated*20)

	d := (m.Liveliness - targetLiveliness) / targetLiveliness
	liveliness := math.Exp(-d * d)

	return clamp01(weightBrightness*brightness + weightClipping*clipping + weightLiveliness*liveliness)
}

// saturatedFraction counts pixels with any channel at full intensity.
func saturatedFraction(r *raster.Raster) float64 {
	pix := r.Image().Pix
	n := len(pix) / 4
	if n == 0 {
		return 0
	}
	sat := 0
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] == 255 || pix[i+1] == 255 || pix[i+2] == 255 {
			sat++
		}
	}
	return float64(sat) / float64(n)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
