// Pulse preview tool - interactive heartbeat waveform with sliders.
//
// Usage: go run ./cmd/pulsepreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/game"
	"github.com/pthm-cable/heartbeat/geometry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotWidth    = 560
	plotHeight   = 300
	panelWidth   = windowWidth - plotWidth - 40

	plotTicks   = 300 // ticks of simulated time shown in the plot
	curvePoints = 96
)

// previewParams holds the slider values.
type previewParams struct {
	Pulse     config.PulseConfig
	PulseGain float64
}

func defaults() previewParams {
	cfg := config.Default()
	return previewParams{Pulse: cfg.Pulse, PulseGain: cfg.Particle.PulseGain}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Pulse Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaults()

	var t float64
	animating := true
	samples := make([]float64, plotTicks)

	for !rl.WindowShouldClose() {
		if animating {
			t += params.Pulse.TimeStep
		}
		for i := range samples {
			samples[i] = game.Pulse(t-float64(plotTicks-1-i)*params.Pulse.TimeStep, params.Pulse)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPlot(samples, params)
		drawHeart(params, game.Pulse(t, params.Pulse))

		lo, hi := minMax(samples)
		statsY := int32(plotHeight + 30)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Now: %.3f", lo, hi, samples[len(samples)-1]), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.2f", t), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(plotWidth + 30)
		panelY := float32(10)

		rl.DrawText("Pulse Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY = slider(panelX, panelY, "Time step (per tick)", "0.018", "0.02", &params.Pulse.TimeStep, 0.018, 0.02, "%.4f")
		panelY = slider(panelX, panelY, "Frequency", "1", "6", &params.Pulse.Frequency, 1, 6, "%.2f")

		exp := float64(params.Pulse.Exponent)
		panelY = slider(panelX, panelY, "Exponent (even, higher = sharper)", "60", "80", &exp, 60, 80, "%.0f")
		params.Pulse.Exponent = int(exp) &^ 1

		panelY = slider(panelX, panelY, "Spike amplitude", "0", "1", &params.Pulse.SpikeAmplitude, 0, 1, "%.2f")
		panelY = slider(panelX, panelY, "Wobble phase", "0", "3.14", &params.Pulse.WobblePhase, 0, math.Pi, "%.2f")
		panelY = slider(panelX, panelY, "Wobble amplitude", "0", "0.3", &params.Pulse.WobbleAmplitude, 0, 0.3, "%.3f")

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		panelY = slider(panelX, panelY, "Pulse gain (heart scale)", "0", "0.3", &params.PulseGain, 0, 0.3, "%.3f")
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Pause", "Play")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults()
			t = 0
		}
		panelY += 55

		// Output YAML
		yaml := toYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled raygui slider bound to v and returns the next row.
func slider(x, y float32, label, lo, hi string, v *float64, min, max float64, format string) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	nv := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		lo, hi,
		float32(*v), float32(min), float32(max),
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	if nv != float32(*v) {
		*v = float64(nv)
	}
	return y + 35
}

// drawPlot draws the waveform with its zero line, newest sample on the right.
func drawPlot(samples []float64, p previewParams) {
	const x0, y0 = 10, 10
	rl.DrawRectangle(x0, y0, plotWidth, plotHeight, rl.Black)
	rl.DrawRectangleLines(x0, y0, plotWidth, plotHeight, rl.DarkGray)

	// Fixed vertical range so slider changes are visible as amplitude.
	top := math.Max(1, p.Pulse.SpikeAmplitude+p.Pulse.WobbleAmplitude)
	bottom := -math.Max(0.3, p.Pulse.WobbleAmplitude)
	toY := func(v float64) float32 {
		return float32(y0) + float32((top-v)/(top-bottom))*plotHeight
	}

	zero := toY(0)
	rl.DrawLineV(rl.Vector2{X: x0, Y: zero}, rl.Vector2{X: x0 + plotWidth, Y: zero}, rl.DarkGray)

	step := float32(plotWidth) / float32(len(samples)-1)
	for i := 1; i < len(samples); i++ {
		a := rl.Vector2{X: x0 + float32(i-1)*step, Y: toY(samples[i-1])}
		b := rl.Vector2{X: x0 + float32(i)*step, Y: toY(samples[i])}
		rl.DrawLineV(a, b, rl.NewColor(255, 60, 110, 255))
	}
}

// drawHeart draws the heart outline scaled the way coalesced particles are.
func drawHeart(p previewParams, pulse float64) {
	cx := float32(10 + plotWidth/2)
	cy := float32(plotHeight + 240)
	scale := 7 * (1 + pulse*p.PulseGain)

	prev := rl.Vector2{}
	for i := 0; i <= curvePoints; i++ {
		x, y := geometry.HeartCurve(2 * math.Pi * float64(i) / curvePoints)
		pt := rl.Vector2{X: cx + float32(x*scale), Y: cy + float32(y*scale)}
		if i > 0 {
			rl.DrawLineEx(prev, pt, 3, rl.NewColor(230, 30, 70, 255))
		}
		prev = pt
	}
	rl.DrawText(fmt.Sprintf("scale %.3f", 1+pulse*p.PulseGain), int32(cx)-40, int32(cy)+130, 16, rl.DarkGray)
}

func minMax(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func toYAML(p previewParams) string {
	return fmt.Sprintf(`pulse:
  time_step: %.4f
  frequency: %.2f
  exponent: %d
  spike_amplitude: %.2f
  wobble_phase: %.2f
  wobble_amplitude: %.3f
particle:
  pulse_gain: %.3f`,
		p.Pulse.TimeStep, p.Pulse.Frequency, p.Pulse.Exponent,
		p.Pulse.SpikeAmplitude, p.Pulse.WobblePhase, p.Pulse.WobbleAmplitude,
		p.PulseGain)
}
